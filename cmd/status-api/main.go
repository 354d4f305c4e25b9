package main

import (
	"fmt"
	"os"

	"complaints-service/internal/config"
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
	handler := httphandler.NewStatusHandler(reports, appLogger)
	requestLog := middleware.RequestLog(appLogger)
	router := httphandler.NewStatusRouter(handler, requestLog, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.StatusPort)
	appLogger.Info().Str("addr", addr).Msg("starting status api")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
