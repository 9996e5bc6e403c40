package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/app"
	"github.com/vladislavdragonenkov/storedesk/internal/transport/mcpserver"
	"github.com/vladislavdragonenkov/storedesk/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (env overrides apply on top)")
	flag.Parse()

	// stdout занят протоколом MCP.
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("не удалось прочитать .env")
	}
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("не удалось загрузить конфигурацию")
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.WithField("component", "store-mcp")
	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("не удалось собрать зависимости")
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("ошибка при освобождении ресурсов")
		}
	}()

	srv := mcpserver.NewServer(version.GetVersion(), mcpserver.Deps{
		Orders:  deps.Orders,
		Search:  deps.Search,
		Tracker: deps.Tracker,
		Reports: deps.Reports,
		Logger:  logger,
	})

	logger.WithField("storage", cfg.StorageDriver).Info("MCP-сервер запущен на stdio")
	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("MCP-сервер завершился с ошибкой")
	}
}
