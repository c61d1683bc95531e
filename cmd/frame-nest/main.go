package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/frame-nest/internal/cache"
	"github.com/dimitrije/frame-nest/internal/config"
	"github.com/dimitrije/frame-nest/internal/database"
	"github.com/dimitrije/frame-nest/internal/handlers"
	"github.com/dimitrije/frame-nest/internal/metrics"
	authmw "github.com/dimitrije/frame-nest/internal/middleware"
	"github.com/dimitrije/frame-nest/internal/services"
	"github.com/dimitrije/frame-nest/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	permissionService := services.NewPermissionService(db)
	collectionService := services.NewCollectionService(db)
	photoService := services.NewPhotoService(db, permissionService)

	if cfg.Redis.Enabled() {
		rc := cache.NewFromConfig(cfg.Redis)
		if err := rc.Ping(ctx); err != nil {
			log.Printf("Redis unavailable at %s, serving collections without cache: %v", cfg.Redis.Addr, err)
			rc.Close()
		} else {
			defer rc.Close()
			collectionService.WithCache(rc)
			log.Printf("Collection cache enabled (ttl %s)", cfg.Redis.TTL)
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	hub := sse.NewHub()
	go hub.Run()

	collectionHandler := handlers.NewCollectionHandler(collectionService, m)
	photoHandler := handlers.NewPhotoHandler(photoService, hub, m)
	permissionHandler := handlers.NewPermissionHandler(permissionService, hub, m)
	sseHandler := handlers.NewSSEHandler(hub, permissionService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/collections", collectionHandler.List)
	protected.Post("/collections", collectionHandler.Create)
	protected.Get("/collections/:collectionId", collectionHandler.Get)

	protected.Get("/collections/:collectionId/photos", photoHandler.List)
	protected.Post("/collections/:collectionId/photos", photoHandler.Add)
	protected.Get("/photos/:photoId", photoHandler.Get)

	protected.Get("/collections/:collectionId/permissions", permissionHandler.List)
	protected.Get("/collections/:collectionId/permissions/:grantee", permissionHandler.Get)
	protected.Put("/collections/:collectionId/permissions/:grantee", permissionHandler.Set)

	protected.Get("/collections/:collectionId/events", sseHandler.Connect)
	protected.Post("/events/:clientId/subscribe/:collectionId", sseHandler.Subscribe)
	protected.Post("/events/:clientId/unsubscribe/:collectionId", sseHandler.Unsubscribe)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.MetricsPort),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Metrics listening on %s", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Metrics server failed: %v", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Metrics server shutdown: %v", err)
	}
}
