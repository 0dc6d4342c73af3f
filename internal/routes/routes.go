package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/audit"
	"github.com/quickai-hq/quickai-api/internal/config"
	"github.com/quickai-hq/quickai-api/internal/handlers"
	infraRepo "github.com/quickai-hq/quickai-api/internal/infra/repository"
	"github.com/quickai-hq/quickai-api/internal/middleware"
	"github.com/quickai-hq/quickai-api/internal/session"
	ucCatalog "github.com/quickai-hq/quickai-api/internal/usecase/catalog"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	sessions := session.New(cfg.RedisAddr)

	// ======================================================
	// USE CASES — CATALOG
	// ======================================================
	importProductsUC := ucCatalog.NewImportProducts(
		catalogRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db, auditDispatcher)

	productHandler := handlers.NewProductHandler(db, auditDispatcher)
	importHandler := handlers.NewImportHandler(importProductsUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.SignUp)
		api.POST("/auth/login", authHandler.SignIn)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/products", productHandler.List)
			secured.POST("/me/products", productHandler.Create)
			secured.GET("/me/products/categories", productHandler.Categories)
			secured.GET("/me/products/:id", productHandler.Get)
			secured.PATCH("/me/products/:id", productHandler.Update)
			secured.DELETE("/me/products/:id", productHandler.Delete)

			secured.POST("/me/products/import", importHandler.Import)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	// ======================================================
	// INTERNAL TOOLING (token-gated, never tenant-facing)
	// ======================================================
	internalAPI := r.Group("/internal")
	{
		internalAPI.GET("/products", adminHandler.ListAllProducts)
	}
}
