package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"anoa.com/placementportal/internal/bootstrap"
	"anoa.com/placementportal/internal/config"
	searchService "anoa.com/placementportal/internal/modules/search/service"
	"anoa.com/placementportal/internal/server"
	"anoa.com/placementportal/pkg/database"
	"anoa.com/placementportal/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db := database.Connect(cfg.DatabaseURL)
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	var deps server.Deps

	if cfg.CloudinaryEnabled() {
		fileStorage, err := storage.NewCloudinaryStorage(storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		})
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
		deps.Storage = fileStorage
	} else {
		log.Println("Cloudinary is not configured, resume uploads are disabled")
	}

	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		deps.Search = searchService.NewMeiliSearchService(meiliClient, cfg.MeiliMasterKey)
	}

	srv := server.NewServer(cfg, db, redisClient, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Placement portal listening on :%s (%s)", cfg.Port, cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
	<-done
}

// connectRedis returns nil when Redis is not configured or unreachable.
// Rate limiting and realtime notifications are skipped without it.
func connectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("REDIS_URL is not set, running without Redis")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, running without it: %v", err)
		_ = client.Close()
		return nil
	}

	return client
}
