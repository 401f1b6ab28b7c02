package router

import (
	"time"

	"merchant-pulse/internal/config"
	"merchant-pulse/internal/handler"
	"merchant-pulse/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRouter wires the gin engine, middleware and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// registration and login do not require a token
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	recordHandler := handler.NewRecordHandler(db, cfg.App.PageSize)
	protected.POST("/records", recordHandler.CreateRecord)
	protected.GET("/records", recordHandler.ListRecords)
	protected.PUT("/records/:id", recordHandler.UpdateRecord)
	protected.DELETE("/records/:id", recordHandler.DeleteRecord)
	protected.GET("/stats/monthly", recordHandler.GetMonthlyStats)

	reportHandler := handler.NewReportHandler(db)
	protected.GET("/reports", reportHandler.GetReport)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	adminHandler := handler.NewAdminHandler(db)
	protected.POST("/admin/seed", adminHandler.SeedSampleData)
	protected.POST("/admin/reset", adminHandler.ResetData)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
