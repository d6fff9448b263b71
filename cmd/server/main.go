package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/solana-ai-terminal/backend/internal/analysis"
	"github.com/solana-ai-terminal/backend/internal/api"
	"github.com/solana-ai-terminal/backend/internal/config"
	"github.com/solana-ai-terminal/backend/internal/database"
	"github.com/solana-ai-terminal/backend/internal/dexscreener"
	"github.com/solana-ai-terminal/backend/internal/jupiter"
	"github.com/solana-ai-terminal/backend/internal/repository"
	"github.com/solana-ai-terminal/backend/internal/rugcheck"
	"github.com/solana-ai-terminal/backend/internal/service"
	"github.com/solana-ai-terminal/backend/internal/wallet"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	tokenRepo := repository.NewTokenRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create upstream clients
	dexClient := dexscreener.NewClient(cfg.Market.DexScreenerURL)
	rugcheckClient := rugcheck.NewClient(cfg.Market.RugCheckURL)
	jupiterClient := jupiter.NewClient(cfg.Market.JupiterQuoteURL)
	walletClient := wallet.NewClient(cfg.Solana.RPCURL)
	planner := analysis.NewPlanner(cfg.Gemini.Model)

	// Create services
	settingsService, err := service.NewSettingsService(settingRepo, cfg.Gemini.FernetKey, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}

	systemService := service.NewSystemService(db, map[string]bool{
		"analysis": cfg.Gemini.APIKey != "" || cfg.Gemini.FernetKey != "",
		"wallet":   cfg.Solana.RPCURL != "",
	})
	marketService := service.NewMarketService(dexClient, tokenRepo)
	portfolioService := service.NewPortfolioService(tokenRepo, tradeRepo, marketService)
	walletService := service.NewWalletService(walletClient, dexClient)
	analysisService := service.NewAnalysisService(planner, settingsService, marketService, tokenRepo)

	// Schedule the cached price refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Market.RefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := marketService.RefreshAll(ctx); err != nil {
			log.Printf("Scheduled price refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid market refresh schedule %q: %v", cfg.Market.RefreshSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Settings:  settingsService,
		Portfolio: portfolioService,
		Market:    marketService,
		Wallet:    walletService,
		Analysis:  analysisService,
		RugCheck:  rugcheckClient,
		Jupiter:   jupiterClient,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
