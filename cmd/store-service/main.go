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
	"github.com/vladislavdragonenkov/storedesk/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
// Неизвестный уровень заменяется на info.
func setupLogger(level string) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// loadEnvFile подхватывает .env, если он есть. Отсутствие файла не ошибка.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (env overrides apply on top)")
	envFile := flag.String("env-file", ".env", "optional dotenv file")
	flag.Parse()

	if err := loadEnvFile(*envFile); err != nil {
		log.WithError(err).Warn("не удалось прочитать env-файл")
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("не удалось загрузить конфигурацию")
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		log.WithError(err).WithField("log_level", cfg.LogLevel).Warn("неизвестный уровень логирования, используем info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"storage":      cfg.StorageDriver,
		"version":      version.GetVersion(),
	}).Info("запускаем store-service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("store-service остановлен")
}
