package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"corb3d-backend/internal/config"
	"corb3d-backend/internal/database"
	"corb3d-backend/internal/handlers"
	"corb3d-backend/internal/middleware"
	"corb3d-backend/internal/upload"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	sessionQueries := database.NewSessionQueries(db)
	if err := sessionQueries.DeleteExpired(); err != nil {
		slog.Warn("failed to clear expired sessions", "error", err)
	}

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Session cookies are Secure outside development
	middleware.InitSessionStore(cfg.SessionSecret, !cfg.Development)

	r.Use(middleware.RequestLogger())
	r.Use(middleware.TrustedProxyHeaders())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Static file serving for uploaded images
	r.Static(upload.PublicPath, uploads.Dir())

	authHandler, err := handlers.NewAuthHandler(cfg, sessionQueries)
	if err != nil {
		log.Fatal("Failed to initialize auth handler:", err)
	}
	publicHandler := handlers.NewPublicHandler(db)
	adminHandler := handlers.NewAdminHandler(db, uploads)

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/contact", publicHandler.CreateContactMessage)
		api.GET("/portfolio", publicHandler.GetPortfolio)
		api.GET("/settings/whatsapp", publicHandler.GetWhatsApp)
		api.GET("/settings/business-hours", publicHandler.GetBusinessHours)
		api.GET("/settings/about", publicHandler.GetAbout)
	}

	// Session routes
	session := r.Group("/api/admin")
	{
		session.POST("/login", authHandler.Login)
		session.POST("/logout", authHandler.Logout)
		session.GET("/me", authHandler.Me)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired(sessionQueries))
	{
		admin.GET("/messages", adminHandler.ListMessages)
		admin.PATCH("/messages/:id/read", adminHandler.MarkMessageRead)
		admin.PATCH("/messages/:id/unread", adminHandler.MarkMessageUnread)
		admin.DELETE("/messages/:id", adminHandler.DeleteMessage)

		admin.GET("/portfolio", adminHandler.ListPortfolio)
		admin.POST("/portfolio", adminHandler.CreatePortfolioItem)
		admin.PATCH("/portfolio/:id", adminHandler.UpdatePortfolioItem)
		admin.DELETE("/portfolio/:id", adminHandler.DeletePortfolioItem)
		admin.POST("/portfolio/:id/images", adminHandler.AddPortfolioImage)
		admin.DELETE("/portfolio/images/:imageId", adminHandler.DeletePortfolioImage)

		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)
	}

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
