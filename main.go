package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bac_exam_platform/catalog"
	"bac_exam_platform/client"
	"bac_exam_platform/config"
	"bac_exam_platform/db"
	"bac_exam_platform/middleware"
	"bac_exam_platform/platform"
	"bac_exam_platform/routes"
	"bac_exam_platform/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store   session.Store
		refresh middleware.RefreshStore
	)
	switch cfg.StorageDriver {
	case "postgres":
		database, err := db.Initialize(db.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		})
		if err != nil {
			log.Fatalf("Error connecting to the database: %v", err)
		}
		defer database.Close()

		if err := db.InitSchema(database); err != nil {
			log.Fatalf("Error initializing database schema: %v", err)
		}
		go purgeLoop(ctx, database, time.Hour)

		store = session.NewPostgresStore(database)
		refresh = middleware.NewPostgresRefreshStore(database)
	default:
		log.Println("Using in-memory storage, visitors are lost on restart")
		store = session.NewMemoryStore()
		refresh = middleware.NewMemoryRefreshStore()
	}

	api := client.New(cfg.APIURL, cfg.APITimeout, cfg.ChapterTimeout)
	registry := platform.NewRegistry(cfg.VisitorIdle)
	go registry.Run(ctx, time.Minute)

	deps := routes.Dependencies{
		Tokens:   middleware.NewTokenService(refresh, []byte(cfg.JWTSecret)),
		Store:    store,
		Sessions: session.NewHolder(store, api),
		API:      api,
		Catalog:  catalog.New(api, newCache(ctx, cfg)),
		Registry: registry,
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
		"PATCH",
	}
	r.Use(cors.New(corsConfig))

	routes.SetupRoutes(r, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}

// newCache returns a Redis backed exam cache when REDIS_ADDR is set and
// reachable, and an in-process cache otherwise.
func newCache(ctx context.Context, cfg *config.Config) catalog.Cache {
	if cfg.RedisAddr == "" {
		return catalog.NewMemoryCache(cfg.CatalogTTL)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: redis unreachable at %s, using in-memory cache: %v", cfg.RedisAddr, err)
		rdb.Close()
		return catalog.NewMemoryCache(cfg.CatalogTTL)
	}
	return catalog.NewRedisCache(rdb, "bac", cfg.CatalogTTL)
}

func purgeLoop(ctx context.Context, database *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.PurgeExpired(database)
			if err != nil {
				log.Printf("Error purging expired visitors: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Purged %d expired visitors", n)
			}
		}
	}
}
