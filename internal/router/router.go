package router

import (
	"fmt"
	"strings"

	"github.com/xM4T3US/server-mjtech/internal/cache"
	"github.com/xM4T3US/server-mjtech/internal/config"
	adminhandlers "github.com/xM4T3US/server-mjtech/internal/http/handlers/admin"
	publichandlers "github.com/xM4T3US/server-mjtech/internal/http/handlers/public"
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mjtech"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// 前台公开接口
		api.GET("/products", publicHandler.Products)
		api.GET("/store", publicHandler.Store)
		api.GET("/health", publicHandler.Health)
		api.GET("/refresh", publicHandler.Refresh)

		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")),
				adminHandler.Login,
			)
			auth.GET("/verify", adminHandler.Verify)
		}

		// 后台管理接口（JWT + RBAC）
		admin := api.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminUserRepo))
		admin.Use(AdminRBACMiddleware(c.AuthzService))
		{
			admin.PUT("/password", adminHandler.ChangePassword)

			admin.GET("/products", adminHandler.ListProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.PUT("/products/:id/toggle", adminHandler.ToggleProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id/role", adminHandler.SetUserRole)
			admin.PUT("/users/:id/toggle", adminHandler.ToggleUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/logs", adminHandler.ListLogs)
		}
	}

	return r
}
