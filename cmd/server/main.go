package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/config"
	"github.com/mamadbah2/aquashop/internal/repository/mongodb"
	"github.com/mamadbah2/aquashop/internal/repository/sheets"
	"github.com/mamadbah2/aquashop/internal/scheduler"
	"github.com/mamadbah2/aquashop/internal/server/handlers"
	"github.com/mamadbah2/aquashop/internal/server/router"
	"github.com/mamadbah2/aquashop/internal/service/analytics"
	authsvc "github.com/mamadbah2/aquashop/internal/service/auth"
	clientsvc "github.com/mamadbah2/aquashop/internal/service/clients"
	insightsvc "github.com/mamadbah2/aquashop/internal/service/insights"
	inventorysvc "github.com/mamadbah2/aquashop/internal/service/inventory"
	"github.com/mamadbah2/aquashop/internal/service/notify"
	reportingsvc "github.com/mamadbah2/aquashop/internal/service/reporting"
	salesvc "github.com/mamadbah2/aquashop/internal/service/sales"
	"github.com/mamadbah2/aquashop/pkg/clients/anthropic"
	"github.com/mamadbah2/aquashop/pkg/clients/openai"
	whatsappclient "github.com/mamadbah2/aquashop/pkg/clients/whatsapp"
	"github.com/mamadbah2/aquashop/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid reporting timezone", zap.Error(err))
	}
	policy, err := analytics.ParseCostPolicy(cfg.Reporting.CostPolicy)
	if err != nil {
		baseLogger.Fatal("invalid cost policy", zap.Error(err))
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()
	if err := mongoRepo.EnsureIndexes(startupCtx); err != nil {
		baseLogger.Fatal("failed to create mongodb indexes", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets not configured, billing export disabled")
	}

	engine := analytics.New(policy, loc)
	reportingSvc := reportingsvc.NewService(mongoRepo, mongoRepo, mongoRepo, sheetsRepo, engine, baseLogger.Named("svc.reporting"))
	inventorySvc := inventorysvc.NewService(mongoRepo, reportingSvc, baseLogger.Named("svc.inventory"))
	clientSvc := clientsvc.NewService(mongoRepo, mongoRepo, mongoRepo, reportingSvc, baseLogger.Named("svc.clients"))
	saleSvc := salesvc.NewService(mongoRepo, mongoRepo, mongoRepo, reportingSvc, baseLogger.Named("svc.sales"))
	authService := authsvc.NewService(cfg.Auth, baseLogger.Named("svc.auth"))

	var generator insightsvc.TextGenerator
	switch {
	case !cfg.AI.Enabled():
		baseLogger.Warn("ai api key missing, sales insights disabled", zap.String("provider", cfg.AI.Provider))
	case cfg.AI.Provider == config.AIProviderOpenAI:
		generator = openai.NewClient(cfg.AI.OpenAIKey, cfg.AI.Model)
		baseLogger.Info("openai client enabled")
	default:
		generator = anthropic.NewClient(cfg.AI.AnthropicKey, anthropic.WithModel(cfg.AI.Model))
		baseLogger.Info("anthropic ai client enabled")
	}
	insightSvc := insightsvc.NewService(generator, baseLogger.Named("svc.insights"))

	var notifier notify.Notifier = notify.Nop{}
	if cfg.WhatsApp.Enabled() {
		notifier = notify.NewWhatsAppNotifier(cfg.WhatsApp, whatsappclient.NewClient(cfg.WhatsApp), baseLogger.Named("notify.whatsapp"))
		baseLogger.Info("whatsapp owner notifications enabled")
	}

	httpEngine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Products:  handlers.NewProductHandler(inventorySvc, baseLogger.Named("handlers.products")),
		Clients:   handlers.NewClientHandler(clientSvc, baseLogger.Named("handlers.clients")),
		Sales:     handlers.NewSaleHandler(saleSvc, baseLogger.Named("handlers.sales")),
		Dashboard: handlers.NewDashboardHandler(reportingSvc, insightSvc, baseLogger.Named("handlers.dashboard")),
		Reports:   handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, authService, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
