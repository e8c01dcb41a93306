package api

import (
	"time"

	"grocery-planner/internal/api/handlers/grocery"
	"grocery-planner/internal/api/handlers/health"
	"grocery-planner/internal/api/handlers/mealplan"
	"grocery-planner/internal/api/handlers/recipe"
	"grocery-planner/internal/api/middleware"
	"grocery-planner/internal/core/cache"
	groceryService "grocery-planner/internal/core/grocery"
	"grocery-planner/internal/infrastructure/config"
	"grocery-planner/internal/infrastructure/store"
	"grocery-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的外部資源
type Dependencies struct {
	Store *store.Store
	Cache cache.Store // 可為 nil
}

// SetupRouter 設置路由；回傳的 stop 用來停止中間件的背景協程
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, func()) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", middleware.UserHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	var stops []func()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		router.Use(limiter.Handler())
		stops = append(stops, limiter.Stop)
	}

	// 健康檢查路由
	checks := map[string]health.Checker{}
	if deps.Store != nil {
		checks["database"] = deps.Store
	}
	if r, ok := deps.Cache.(*cache.Redis); ok {
		checks["cache"] = r
	}
	health.NewHandler(cfg.App.Version, checks).Register(router)

	groceries := groceryService.NewService(deps.Store, deps.Cache, groceryService.Uncategorized)

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	stops = append(stops, dedup.Stop)

	// API 路由組
	api := router.Group("/api/v1", middleware.RequireUser(), dedup.Handler())
	grocery.NewHandler(groceries).Register(api)
	recipe.NewHandler(deps.Store, groceries).Register(api)
	mealplan.NewHandler(deps.Store, groceries).Register(api)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, func() {
		for _, stop := range stops {
			stop()
		}
	}
}
