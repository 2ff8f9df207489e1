package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikhilraj/carepoint-backend/internal/analysis"
	"github.com/nikhilraj/carepoint-backend/internal/config"
	"github.com/nikhilraj/carepoint-backend/internal/directory"
	"github.com/nikhilraj/carepoint-backend/internal/gemini"
	"github.com/nikhilraj/carepoint-backend/internal/httpapi"
)

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	var store *directory.Store
	if cfg.EnableDB {
		pool, err := directory.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer pool.Close()

		store = directory.New(pool, cfg.DirectoryTimeout)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
	}

	client := gemini.NewClient(cfg.GeminiBase, cfg.GeminiAPIKey, cfg.GenerateTimeout)
	analyzer := analysis.NewAnalyzer(client, cfg.FallbackModels, cfg.ListModelsTimeout, cfg.GenerateTimeout)

	handler := &httpapi.Handler{Analyzer: analyzer}
	var health httpapi.HealthChecker
	if store != nil {
		handler.Directory = store
		health = store
	}

	router := httpapi.NewRouter(handler, health, cfg.AuthRequired)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second, // covers sequential model fallback
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("server listening on :%s", cfg.Port)
	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
