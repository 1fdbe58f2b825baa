package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"atlas/api"
	"atlas/config"
	"atlas/credentials"
	"atlas/debate"
	"atlas/evidence"
	"atlas/inference"
	"atlas/policy"
	"atlas/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting ATLAS server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Inference URL: %s", cfg.InferenceURL)

	// Load credential pool; the process refuses to start without tokens
	pool, err := credentials.PoolFromEnv()
	if err != nil {
		log.Fatalf("Failed to load credential pool: %v", err)
	}
	log.Printf("Credential pool loaded with %d token(s)", pool.Size())

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize inference client and failover executor
	client := inference.NewClient(cfg.InferenceURL)
	executor := inference.NewExecutor(client, pool)

	// Initialize evidence gatherer
	gatherer := evidence.NewGatherer(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.ReaderURL, cfg.ReaderAPIKey, cfg.MaxArticles, cfg.EvidenceTimeout)
	if cfg.NewsAPIKey == "" {
		log.Printf("WARN: no news API key configured, evidence gathering is disabled")
	}

	// Initialize orchestrator with result cache
	cache := debate.NewCache(cfg.CacheTTL)
	orchestrator := debate.NewOrchestrator(executor, gatherer, cache, cfg.MaxTokens)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize handler
	h := api.NewHandler(orchestrator, db, policyEngine, cfg)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("ATLAS API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down ATLAS server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("ATLAS server stopped")
}
