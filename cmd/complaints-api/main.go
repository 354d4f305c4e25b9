package main

import (
	"context"
	"fmt"
	"os"

	"complaints-service/internal/config"
	"complaints-service/internal/dataset"
	httphandler "complaints-service/internal/http"
	"complaints-service/internal/http/middleware"
	"complaints-service/internal/logger"
	"complaints-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	reports := service.NewReportService(cfg.Data.DatasetPath, cfg.Report.CacheTTL, appLogger)

	watcher, err := dataset.NewWatcher(cfg.Data.DatasetPath, appLogger, reports.Invalidate)
	if err != nil {
		appLogger.Warn().Err(err).Msg("dataset watcher unavailable, cache falls back to TTL expiry")
	} else {
		defer watcher.Close()
		go watcher.Run(context.Background())
	}

	handler := httphandler.NewHandler(reports, cfg.Data.UploadDir, appLogger)
	requestLog := middleware.RequestLog(appLogger)
	router := httphandler.NewRouter(handler, requestLog, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("dataset", cfg.Data.DatasetPath).Msg("starting complaints api")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
