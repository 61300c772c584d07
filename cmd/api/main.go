package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/leadpilot/leadpilot-backend/internal/api/handlers"
	"github.com/leadpilot/leadpilot-backend/internal/api/middleware"
	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/cron"
	"github.com/leadpilot/leadpilot-backend/internal/db"
	"github.com/leadpilot/leadpilot-backend/internal/email"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/seed"
	"github.com/leadpilot/leadpilot-backend/internal/service"
	"github.com/leadpilot/leadpilot-backend/internal/socket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[API] No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run database migrations before opening the pool
	if err := db.RunMigrations(cfg.DatabaseURL, "./internal/db/migrations"); err != nil {
		log.Fatalf("[API] Failed to run migrations: %v", err)
	}

	postgres, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[API] Failed to connect to database: %v", err)
	}
	defer postgres.Pool.Close()

	repos := repository.NewRepositories(postgres.Pool)

	// Redis is optional; without it stats are computed on every request
	var cache *db.RedisDB
	if cfg.RedisURL != "" {
		cache, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("[API] Redis unavailable, running without cache: %v", err)
		} else {
			defer cache.Close()
		}
	}

	// Email is optional; without SMTP config no notifications go out
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
	}

	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)

	if cfg.Environment != "production" {
		if err := seed.Run(context.Background(), repos); err != nil {
			log.Printf("[API] Seed failed: %v", err)
		}
	}

	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Cache:       cache,
		EmailSvc:    emailSvc,
		Broadcaster: broadcaster,
	})
	h := handlers.NewHandlers(cfg, services)

	scheduler := cron.NewScheduler(repos.UserRepo)
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		status, overall, dbStatus := http.StatusOK, "ok", "ok"
		if err := postgres.Pool.Ping(c.Request.Context()); err != nil {
			status, overall, dbStatus = http.StatusServiceUnavailable, "degraded", "unreachable"
		}
		c.JSON(status, gin.H{
			"status":    overall,
			"database":  dbStatus,
			"cache":     cache != nil,
			"email":     emailSvc != nil,
			"wsClients": hub.GetConnectedClientsCount(),
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		api.GET("/ws", wsHandler.HandleWebSocket)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			protected.GET("/users/me", h.User.Me)
			protected.PUT("/users/me", h.User.UpdateMe)

			protected.POST("/leads", h.Lead.Create)
			protected.GET("/leads", h.Lead.List)
			protected.GET("/leads/stats", h.Lead.Stats)
			protected.POST("/leads/import", h.Import.Import)
			protected.GET("/leads/import/template", h.Import.Template)
			protected.GET("/leads/:id", h.Lead.Get)
			protected.PUT("/leads/:id", h.Lead.Update)
			protected.PATCH("/leads/:id/status", h.Lead.UpdateStatus)
			protected.DELETE("/leads/:id", h.Lead.Delete)

			protected.POST("/leads/:id/interactions", h.Interaction.Create)
			protected.GET("/leads/:id/interactions", h.Interaction.ListByLead)
			protected.DELETE("/interactions/:id", h.Interaction.Delete)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[API] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[API] Forced shutdown: %v", err)
	}
	log.Println("[API] Server stopped")
}
