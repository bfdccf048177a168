package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/wheeltracker/src/config"
	"github.com/username/wheeltracker/src/database"
	"github.com/username/wheeltracker/src/handlers"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/parsers"
	"github.com/username/wheeltracker/src/processors"
	"github.com/username/wheeltracker/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Wheeltracker backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.CacheExpiry, config.Cfg.CacheCleanup)
	logger.L.Info("Report cache initialized.")

	logger.L.Info("Initializing services and handlers...")
	parserOpts := parsers.Options{
		Strict: config.Cfg.StrictImport,
		Now:    time.Now,
	}

	premiumProcessor := processors.NewPremiumProcessor()
	summaryProcessor := processors.NewSummaryProcessor(premiumProcessor)

	summaryService := services.NewSummaryService(premiumProcessor, summaryProcessor, reportCache)
	importService := services.NewImportService(parserOpts, summaryService)

	uploadHandler := handlers.NewUploadHandler(importService)
	campaignHandler := handlers.NewCampaignHandler(summaryService)
	tradeHandler := handlers.NewTradeHandler(summaryService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/campaigns", campaignHandler.HandleListCampaigns)
	apiRouter.HandleFunc("POST /api/campaigns", campaignHandler.HandleCreateCampaign)
	apiRouter.HandleFunc("GET /api/campaigns/{name}/summary", campaignHandler.HandleGetCampaignSummary)
	apiRouter.HandleFunc("GET /api/campaigns/{name}/trades", campaignHandler.HandleGetCampaignTrades)
	apiRouter.HandleFunc("GET /api/trades", tradeHandler.HandleListTrades)
	apiRouter.HandleFunc("POST /api/trades", tradeHandler.HandleCreateTrade)
	apiRouter.HandleFunc("PUT /api/trades/{id}", tradeHandler.HandleUpdateTrade)
	apiRouter.HandleFunc("GET /api/summary", summaryHandler.HandleGetPortfolioSummary)
	apiRouter.HandleFunc("POST /api/import", uploadHandler.HandleImport)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Wheeltracker backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
