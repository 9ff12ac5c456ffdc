package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dgconsult/api/internal/aicopy"
	"dgconsult/api/internal/app"
	"dgconsult/api/internal/cache"
	"dgconsult/api/internal/config"
	"dgconsult/api/internal/email"
	"dgconsult/api/internal/images"
	"dgconsult/api/internal/session"
	"dgconsult/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	dataStore := store.NewPostgresStore(db)
	service := app.New(cfg, dataStore)

	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis for refresh token storage")
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisStore.Close()
		service.SetSessionStore(redisStore)

		readCache, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("redis cache failed: %v", err)
		}
		defer readCache.Close()
		service.SetCache(readCache)
	} else {
		log.Printf("Using PostgreSQL for refresh token storage")
	}

	if strings.TrimSpace(cfg.StorageEndpoint) != "" {
		storage, err := images.NewStorage(images.StorageConfig{
			Endpoint:   cfg.StorageEndpoint,
			AccessKey:  cfg.StorageAccessKey,
			SecretKey:  cfg.StorageSecretKey,
			Bucket:     cfg.StorageBucket,
			UseSSL:     cfg.StorageUseSSL,
			CDNBaseURL: cfg.CDNBaseURL,
		})
		if err != nil {
			log.Fatalf("image storage failed: %v", err)
		}
		service.SetImageStorage(storage)
	}

	mailService := email.NewService(email.Config{
		APIKey:  cfg.ResendAPIKey,
		From:    cfg.MailFrom,
		AdminTo: cfg.MailAdminTo,
	})
	if mailService.IsConfigured() {
		service.SetMailer(mailService)
	} else {
		log.Printf("Mail delivery not configured, contact emails disabled")
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
		copywriter, err := aicopy.NewService(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("ai copywriting failed: %v", err)
		}
		service.SetCopywriter(copywriter)
	}

	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap error (will retry on next restart): %v", err)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("DGCONSULT API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
