package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dept-portal/backend/config"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("缓存未命中")

// Client Redis 客户端封装
// 职责：列表查询缓存（按键模式失效）、Token 黑名单、限流计数
// 调用方持有 nil *Client 时所有操作均安全降级（缓存未命中 / 放行）
type Client struct {
	rdb     *goredis.Client
	listTTL time.Duration
	logger  *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{
		rdb:     rdb,
		listTTL: time.Duration(cfg.ListTTL) * time.Second,
		logger:  logger,
	}, nil
}

// ── 列表查询缓存 ──
//
// 键约定：<模块>:<维度>[:<参数>]，如 papers:pending、papers:lecturer:L1、users:all
// 写操作完成后调用 Invalidate 按模式失效，下一次读取回源数据库

// GetJSON 读取缓存并反序列化到 dest；未命中返回 ErrCacheMiss
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return ErrCacheMiss
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON 序列化并写入缓存，TTL 取配置的 list_ttl
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.listTTL <= 0 {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.listTTL).Err()
}

// Invalidate 按键模式失效缓存（SCAN + DEL，模式语法同 Redis MATCH）
// 失效操作是尽力而为：与变更不在一个事务内，TTL 兜底过期
func (c *Client) Invalidate(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil || ttl <= 0 {
		return nil // Token 已过期或无 Redis，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if c == nil {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 限流计数 ──

// CheckRateLimit 固定窗口限流：窗口内计数超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
