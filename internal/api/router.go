package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/solana-ai-terminal/backend/internal/api/handlers"
	custommiddleware "github.com/solana-ai-terminal/backend/internal/api/middleware"
	"github.com/solana-ai-terminal/backend/internal/config"
	"github.com/solana-ai-terminal/backend/internal/jupiter"
	"github.com/solana-ai-terminal/backend/internal/rugcheck"
	"github.com/solana-ai-terminal/backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System    *service.SystemService
	Settings  *service.SettingsService
	Portfolio *service.PortfolioService
	Market    *service.MarketService
	Wallet    *service.WalletService
	Analysis  *service.AnalysisService
	RugCheck  *rugcheck.Client
	Jupiter   *jupiter.Client
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System, svc.Settings)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Put("/settings/gemini-key", systemHandler.SetGeminiKey)
		})

		// Position ledger
		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			tradeHandler := handlers.NewTradeHandler(svc.Portfolio)

			r.Get("/", portfolioHandler.Portfolio)
			r.Post("/", portfolioHandler.TrackToken)
			r.Get("/summary", portfolioHandler.Summary)

			r.Route("/{address}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateAddressMiddleware)
				r.Get("/", portfolioHandler.Position)
				r.Delete("/", portfolioHandler.UntrackToken)

				r.Route("/trades", func(r chi.Router) {
					r.Get("/", tradeHandler.Trades)
					r.Post("/", tradeHandler.CreateTrade)

					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.ValidateUUIDMiddleware)
						r.Delete("/", tradeHandler.DeleteTrade)
					})
				})
			})
		})

		// Market data
		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svc.Market)
			r.Get("/search", marketHandler.Search)

			r.Route("/tokens/{address}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateAddressMiddleware)
				r.Get("/", marketHandler.Token)
			})
		})

		// Upstream proxies
		proxyHandler := handlers.NewProxyHandler(svc.RugCheck, svc.Jupiter)
		r.Route("/rugcheck/{address}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateAddressMiddleware)
			r.Get("/", proxyHandler.RugCheck)
		})
		r.Route("/jupiter", func(r chi.Router) {
			r.Get("/quote", proxyHandler.JupiterQuote)
			r.Post("/swap", proxyHandler.JupiterSwap)
		})

		// Wallet
		r.Route("/wallet/{address}", func(r chi.Router) {
			walletHandler := handlers.NewWalletHandler(svc.Wallet)
			r.Use(custommiddleware.ValidateAddressMiddleware)
			r.Get("/assets", walletHandler.Assets)
		})

		// AI analysis
		r.Route("/analyze/{address}", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(svc.Analysis)
			r.Use(custommiddleware.ValidateAddressMiddleware)
			r.Post("/", analysisHandler.Analyze)
		})
	})

	return r
}
