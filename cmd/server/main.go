package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/mealcart/backend/config"
	httpDelivery "github.com/mealcart/backend/internal/delivery/http"
	"github.com/mealcart/backend/internal/infrastructure/cache"
	"github.com/mealcart/backend/internal/infrastructure/catalog"
	"github.com/mealcart/backend/internal/infrastructure/extraction"
	"github.com/mealcart/backend/internal/usecase"
)

func main() {
	// Load .env for local development; environment variables win either way
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting MealCart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog paths: %v", cfg.Catalog.Paths)

	// Build the immutable rule snapshot and the initial catalog snapshot
	rules := usecase.DefaultRules()

	loader := catalog.NewLoader(cfg.Catalog.Paths)
	if cfg.Server.Environment == "development" {
		loader.SetDebug(true)
	}

	candidates, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog snapshot: %v", err)
	}

	index := usecase.NewCatalogIndex(rules, candidates)
	log.Printf("Catalog snapshot: %d products across %d categories",
		index.Size(), len(index.Categories()))

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Plan cache TTL: %s", cfg.Cache.TTL)

	extractionClient := extraction.NewClient(cfg.Extraction.APIKey, cfg.Extraction.BaseURL)
	if cfg.Server.Environment == "development" {
		extractionClient.SetDebug(true)
		log.Printf("Extraction client debug mode enabled")
	}
	if cfg.Extraction.APIKey == "" {
		log.Printf("WARNING: extraction API key not configured - free-text planning will fail")
	}

	// Initialize usecase layer
	plannerService := usecase.NewPlannerService(rules, index, memoryCache, usecase.PlannerConfig{
		MaxCandidates:      cfg.Planner.MaxCandidates,
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Planner.EnableDebugLogging,
	})

	log.Printf("Planner: maxCandidates=%d, debug=%v",
		cfg.Planner.MaxCandidates, cfg.Planner.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(plannerService, extractionClient, loader, rules)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
