package api

import (
	"context"
	"net/http"
	"time"

	"recipe-extractor/internal/api/handlers/health"
	recipeHandler "recipe-extractor/internal/api/handlers/recipe"
	translationHandler "recipe-extractor/internal/api/handlers/translation"
	"recipe-extractor/internal/api/middleware"
	"recipe-extractor/internal/core/ai/cache"
	"recipe-extractor/internal/core/ai/openrouter"
	"recipe-extractor/internal/core/classify"
	"recipe-extractor/internal/core/image"
	"recipe-extractor/internal/core/ingest"
	"recipe-extractor/internal/core/ocr"
	"recipe-extractor/internal/core/pipeline"
	"recipe-extractor/internal/core/storage"
	"recipe-extractor/internal/core/translate"
	"recipe-extractor/internal/infrastructure/config"
	"recipe-extractor/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
// resultCache 與 pool 由 main 建立並負責關閉
func SetupRouter(cfg *config.Config, resultCache cache.Cache, pool *ocr.Pool) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與請求去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("ocr_workers", cfg.OCR.Workers),
		zap.Bool("refine_enabled", cfg.OpenRouter.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化遠端精煉客戶端（未啟用時管線會跳過精煉）
	var completer pipeline.Completer
	if cfg.OpenRouter.Enabled {
		completer = openrouter.NewClient(cfg)
	}

	// 初始化管線與周邊服務
	pipelineSvc := pipeline.NewService(cfg, pool, completer, resultCache)
	imageSvc := image.NewService(cfg.Image.MaxSizeBytes)
	fetcher := ingest.NewFetcher(cfg)
	classifier := classify.NewClassifier(cfg)
	translator := translate.NewService(cfg)
	store := storage.NewMemoryStore()

	// 全局中間件：設置超時並將請求 ID 帶入管線 context
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		ctx = common.WithRequestID(ctx, requestid.Get(c))
		c.Request = c.Request.WithContext(ctx)

		// 健康檢查會讀取這些
		c.Set("config", cfg)
		c.Set("ocr_pool", pool)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipeHandlerInstance := recipeHandler.NewHandler(pipelineSvc, imageSvc, fetcher, classifier, store)
		translationHandlerInstance := translationHandler.NewHandler(translator)

		// 食譜抽取相關路由
		recipeGroup := api.Group("/recipe")
		{
			// 圖片抽取
			recipeGroup.POST("/extract", recipeHandlerInstance.HandleExtract)

			// 純文字抽取
			recipeGroup.POST("/parse", recipeHandlerInstance.HandleParse)

			// 網頁抽取
			recipeGroup.POST("/ingest", recipeHandlerInstance.HandleIngest)

			// 食譜內容分類
			recipeGroup.POST("/classify", recipeHandlerInstance.HandleClassify)
		}

		// 已保存食譜
		recipesGroup := api.Group("/recipes")
		{
			recipesGroup.POST("", recipeHandlerInstance.HandleSave)
			recipesGroup.GET("", recipeHandlerInstance.HandleList)
			recipesGroup.GET("/:id", recipeHandlerInstance.HandleGet)
			recipesGroup.DELETE("/:id", recipeHandlerInstance.HandleDelete)
		}

		// 翻譯
		api.POST("/translate", translationHandlerInstance.HandleTranslate)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("refine_enabled", cfg.OpenRouter.Enabled),
		zap.Bool("cache_enabled", resultCache != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
