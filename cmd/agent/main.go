package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"go-jobsearch-agent/config"
	v1 "go-jobsearch-agent/internal/delivery/http/v1"
	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/internal/eventbus"
	"go-jobsearch-agent/internal/gateway/cache"
	"go-jobsearch-agent/internal/gateway/rest"
	"go-jobsearch-agent/internal/usecase"
	"go-jobsearch-agent/pkg/credstore"
	"go-jobsearch-agent/pkg/logger"
	"go-jobsearch-agent/pkg/redisx"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job search agent", "port", cfg.Port, "backend", cfg.APIBaseURL)

	// 3. Credential store (the only durable client-side state)
	tokenPath := cfg.TokenFile
	if tokenPath == "" {
		tokenPath, err = credstore.DefaultPath()
		if err != nil {
			logger.Log.Error("Cannot resolve credential path", "error", err)
			os.Exit(1)
		}
	}
	creds := credstore.New(tokenPath)

	// 4. Backend gateways
	client := rest.NewClient(cfg.APIBaseURL, creds)
	authGW := rest.NewAuthGateway(client)
	trackerGW := rest.NewTrackerGateway(client)
	analysisGW := rest.NewAnalysisGateway(client)
	billingGW := rest.NewBillingGateway(client)

	var catalogGW domain.CatalogGateway = rest.NewCatalogGateway(client)
	if cfg.RedisURL != "" {
		rdb, err := redisx.Connect(redisx.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, catalog caching disabled", "error", err)
		} else {
			defer rdb.Close()
			ttl := time.Duration(cfg.CatalogCacheTTLSeconds) * time.Second
			catalogGW = cache.NewCatalogCache(catalogGW, rdb, ttl)
		}
	}

	// 5. Event bus: observers of session changes subscribe explicitly
	bus := eventbus.New()
	bus.Subscribe(eventbus.TopicLogin, func() {
		logger.Log.Info("auth event", "event", "login")
	})
	bus.Subscribe(eventbus.TopicLogout, func() {
		logger.Log.Info("auth event", "event", "logout")
	})

	// 6. Setup UseCases
	validate := validator.New()
	sessionUC := usecase.NewSessionUsecase(authGW, creds, bus, validate)
	catalogUC := usecase.NewCatalogUsecase(catalogGW, cfg.CatalogPageSize, cfg.CatalogMaxAgeDays)
	trackerUC := usecase.NewTrackerUsecase(trackerGW, sessionUC)
	analysisUC := usecase.NewAnalysisUsecase(analysisGW, sessionUC)
	billingUC := usecase.NewBillingUsecase(billingGW, sessionUC)
	exportUC := usecase.NewExportUsecase(trackerUC)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SessionUC:  sessionUC,
		CatalogUC:  catalogUC,
		TrackerUC:  trackerUC,
		AnalysisUC: analysisUC,
		BillingUC:  billingUC,
		ExportUC:   exportUC,
		Config:     cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down agent...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Agent exiting")
}
