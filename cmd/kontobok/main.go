package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kontobok/kontobok/internal/app"
	"github.com/kontobok/kontobok/internal/audit"
	"github.com/kontobok/kontobok/internal/export"
	"github.com/kontobok/kontobok/internal/ledger/accounts"
	"github.com/kontobok/kontobok/internal/ledger/periods"
	"github.com/kontobok/kontobok/internal/ledger/reports"
	"github.com/kontobok/kontobok/internal/ledger/series"
	"github.com/kontobok/kontobok/internal/ledger/vouchers"
	"github.com/kontobok/kontobok/internal/masterdata/companies"
	"github.com/kontobok/kontobok/internal/observability"
	"github.com/kontobok/kontobok/internal/platform/cache"
	"github.com/kontobok/kontobok/internal/platform/db"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := db.EnsureSchema(ctx, dbpool); err != nil {
		logger.Error("ensure schema", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.SeedDemoData {
		if err := db.SeedDemoCompany(ctx, dbpool, time.Now()); err != nil {
			logger.Error("seed demo company", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()
	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)

	companiesRepo := companies.NewRepository(dbpool)
	companiesService := companies.NewService(companiesRepo)
	companiesHandler := companies.NewHandler(logger, companiesService)

	accountsRepo := accounts.NewRepository(dbpool)
	accountsService := accounts.NewService(accountsRepo)
	accountsHandler := accounts.NewHandler(logger, accountsService)

	seriesRepo := series.NewRepository(dbpool)
	seriesService := series.NewService(seriesRepo)
	seriesHandler := series.NewHandler(logger, seriesService)

	periodsRepo := periods.NewRepository(dbpool)
	periodsService := periods.NewService(periodsRepo)
	periodsHandler := periods.NewHandler(logger, periodsService)

	vouchersRepo := vouchers.NewRepository(dbpool)
	vouchersService := vouchers.NewService(vouchersRepo, reportCache)
	vouchersService.WithMetrics(metrics)
	vouchersHandler := vouchers.NewHandler(logger, vouchersService)

	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo, reportCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	exportService := export.NewService(vouchersRepo, accountsRepo)
	exportHandler := export.NewHandler(logger, exportService)

	auditRepo := audit.NewRepository(dbpool)
	auditService := audit.NewService(auditRepo)
	auditHandler := audit.NewHandler(logger, auditService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CompaniesHandler: companiesHandler,
		AccountsHandler:  accountsHandler,
		SeriesHandler:    seriesHandler,
		PeriodsHandler:   periodsHandler,
		VouchersHandler:  vouchersHandler,
		ReportsHandler:   reportsHandler,
		ExportHandler:    exportHandler,
		AuditHandler:     auditHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
