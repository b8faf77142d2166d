package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"dept-portal/backend/pkg/cache"
	"dept-portal/backend/pkg/jwt"
	"dept-portal/backend/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 校验黑名单后将用户信息与角色快照注入上下文
// cacheClient 为 nil 时跳过黑名单检查（降级放行）
func JWTAuth(jwtMgr *jwt.Manager, cacheClient *cache.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		// 黑名单检查（登出后的 Token 不可复用）
		blacklisted, err := cacheClient.IsBlacklisted(c.Request.Context(), claims.ID)
		if err == nil && blacklisted {
			response.Unauthorized(c, 10002, "Token 已失效")
			c.Abort()
			return
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户角色快照是否包含指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("roles")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRoles, ok := v.([]string)
		if !ok {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			for _, r := range userRoles {
				if r == allowed {
					c.Next()
					return
				}
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
