package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dept-portal/backend/config"
	"dept-portal/backend/internal/api/handler"
	"dept-portal/backend/internal/api/middleware"
	"dept-portal/backend/pkg/cache"
	"dept-portal/backend/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, cacheClient *cache.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录注册单独限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(cacheClient, 20, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 公开展示模块（无需认证）
		v1.GET("/research", h.Paper.ListPublic)
		v1.GET("/projects", h.Project.ListPublic)
		v1.GET("/lecturers", h.Lecturer.List)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, cacheClient))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户管理模块（管理员）
			users := authorized.Group("/users", middleware.RoleAuth("admin"))
			{
				users.GET("", h.User.ListUsers)
				users.PUT("/:id/review", h.User.ReviewUser)
				users.POST("/:id/roles", h.User.AssignRole)
			}

			// 学生自助模块
			students := authorized.Group("/students", middleware.RoleAuth("student"))
			{
				students.PUT("/me/profile", h.User.UpdateStudentProfile)
				students.GET("/lecturers/options", h.Lecturer.Options)
			}

			// 科研论文模块
			papers := authorized.Group("/papers")
			{
				papers.POST("", middleware.RoleAuth("lecturer"), h.Paper.Submit)
				papers.GET("/mine", middleware.RoleAuth("lecturer"), h.Paper.ListMine)
				papers.GET("/pending", middleware.RoleAuth("admin"), h.Paper.ListPending)
				papers.PUT("/:id/review", middleware.RoleAuth("admin"), h.Paper.Review)
			}

			// 学生论文模块
			studentPapers := authorized.Group("/student-papers")
			{
				studentPapers.POST("", middleware.RoleAuth("student"), h.StudentPaper.Submit)
				studentPapers.GET("/mine", middleware.RoleAuth("student"), h.StudentPaper.ListMine)
				studentPapers.GET("/pending", middleware.RoleAuth("admin"), h.StudentPaper.ListPending)
				studentPapers.PUT("/:id/review", middleware.RoleAuth("admin"), h.StudentPaper.Review)
			}

			// 系级项目模块
			projects := authorized.Group("/department-projects")
			{
				projects.POST("", middleware.RoleAuth("lecturer"), h.Project.Submit)
				projects.GET("", middleware.RoleAuth("lecturer", "admin"), h.Project.ListAll)
				projects.GET("/pending", middleware.RoleAuth("admin"), h.Project.ListPending)
				projects.PUT("/:id/review", middleware.RoleAuth("admin"), h.Project.Review)
			}

			// 导出模块（管理员）
			export := authorized.Group("/export", middleware.RoleAuth("admin"))
			{
				export.GET("/papers", h.Export.ExportPapers)
			}
		}
	}

	return r
}
