package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeStudio/internal/api/middleware"
	"resumeStudio/internal/auth"
	"resumeStudio/internal/config"
	"resumeStudio/internal/storage"
)

// Deps 汇总路由注册所需的外部依赖，由 cmd/api 组装。
type Deps struct {
	DB          *gorm.DB
	Queue       taskEnqueuer
	AuthService *auth.AuthService
	Redis       redis.UniversalClient
	Storage     storage.ObjectStore
	Logger      *slog.Logger
	Config      *config.Config
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(router *gin.Engine, deps Deps) {
	cfg := deps.Config
	webFonts := cfg.Render.WebFonts
	maxWidth := cfg.API.PreviewMaxWidth

	resumeHandler := NewResumeHandler(deps.DB, deps.Queue, deps.Storage, cfg.API.MaxResumes, maxWidth, webFonts)
	templateHandler := NewTemplateHandler(deps.DB, deps.Storage, deps.Queue, maxWidth, webFonts)
	renderHandler := NewRenderHandler(deps.Storage, maxWidth, webFonts)
	authHandler := NewAuthHandler(deps.DB, deps.AuthService, deps.Redis, deps.Logger, cfg.Auth)
	wsHandler := NewWsHandler(deps.Redis, deps.AuthService, deps.Logger, cfg.API.AllowedOrigins)
	assetHandler := NewAssetHandler(deps.DB, deps.Storage, deps.Redis, deps.Logger, cfg.API)
	authMiddleware := middleware.AuthMiddleware(deps.AuthService)
	optionalAuth := middleware.OptionalAuthMiddleware(deps.AuthService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		templateGroup := v1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/categories", templateHandler.ListCategories)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.GET("/:id/thumbnail", templateHandler.GetThumbnail)
			templateGroup.GET("/:id/preview", templateHandler.PreviewTemplate)
		}

		renderGroup := v1.Group("/render")
		{
			renderGroup.GET("/scale", renderHandler.Scale)
			renderGroup.POST("/preview", optionalAuth, renderHandler.Preview)
			renderGroup.POST("/document", optionalAuth, renderHandler.Document)
		}

		resumeGroup := v1.Group("/resume")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("/latest", resumeHandler.GetLatestResume)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/preview", resumeHandler.PreviewResume)
			resumeGroup.POST("/:id/export", resumeHandler.ExportResume)
			resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.GET("", assetHandler.ListAssets)
			assetGroup.POST("/upload", assetHandler.UploadAsset)
			assetGroup.GET("/view", assetHandler.GetAssetURL)
			assetGroup.DELETE("", assetHandler.DeleteAsset)
		}
	}

	internal := router.Group("/internal")
	internal.Use(middleware.InternalSecretMiddleware(cfg.API.InternalSecret))
	{
		internal.POST("/templates/thumbnails", templateHandler.RegenerateThumbnails)
	}
}
