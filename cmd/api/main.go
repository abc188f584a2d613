package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exportapi/docs"
	"exportapi/internal/auth"
	"exportapi/internal/config"
	"exportapi/internal/database"
	"exportapi/internal/database/migration"
	"exportapi/internal/encoder"
	handlers "exportapi/internal/http/handler"
	"exportapi/internal/http/middleware"
	"exportapi/internal/logging"
	"exportapi/internal/metrics"
	"exportapi/internal/otel"
	"exportapi/internal/repository/postgres"
	"exportapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Export API
// @version 1.0
// @description Turns tabular JSON into xlsx, csv and pdf downloads.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger := logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		fatal(logger, "tracing_init_failed", err)
	}

	deps := handlers.Deps{Logger: logger}

	// export history is optional and only metadata is stored
	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = database.Open(ctx, cfg.Database)
		if err != nil {
			fatal(logger, "database_connect_failed", err)
		}
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			fatal(logger, "database_migration_failed", err)
		}
		deps.DB = db
		deps.History = service.NewHistoryService(postgres.NewExportPostgres(db))
	} else {
		logger.Info("export_history_disabled", "reason", "DB_HOST not set")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(logger, "metrics_init_failed", err)
	}
	exportMetrics, err := metrics.NewExport(reg)
	if err != nil {
		fatal(logger, "metrics_init_failed", err)
	}

	pdfCfg := encoder.DefaultPDFConfig()
	pdfCfg.MaxRows = cfg.PDF.MaxRows
	if err := pdfCfg.LoadFonts(cfg.PDF.FontRegular, cfg.PDF.FontBold); err != nil {
		fatal(logger, "pdf_font_load_failed", err)
	}
	deps.Exports = service.NewExportService(
		encoder.NewXLSX(),
		encoder.NewCSV(),
		encoder.NewPDF(pdfCfg),
		service.WithMetrics(exportMetrics),
	)
	deps.Tokens = auth.NewTokenService(cfg.Auth)

	app := fiber.New(fiber.Config{
		AppName:               "exportapi",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, deps)

	if cfg.Swagger {
		app.Get("/swagger/*", handlers.SwaggerUI(docs.SwaggerInfo, cfg.AppHost))
	}

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		logger.Info("server_starting", "addr", addr, "app_host", cfg.AppHost, "pdf_max_rows", cfg.PDF.MaxRows)
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			fatal(logger, "server_start_failed", err)
		}
	case <-ctx.Done():
		logger.Info("server_stopping")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("server_shutdown_failed", "error", err.Error())
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Error("tracing_shutdown_failed", "error", err.Error())
	}
	if db != nil {
		_ = db.Close()
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err.Error())
	os.Exit(1)
}
