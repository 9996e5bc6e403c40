// Package app собирает сервис магазина: HTTP API, метрики и воркер срочности.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	healthcheck "github.com/vladislavdragonenkov/storedesk/internal/health"
	"github.com/vladislavdragonenkov/storedesk/internal/ticket"
	"github.com/vladislavdragonenkov/storedesk/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/storedesk/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run запускает сервис и блокируется до отмены ctx или ошибки сервера.
// При штатной остановке возвращает ctx.Err().
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close dependencies")
		}
	}()

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.StorageChecker != nil {
		healthHandler.RegisterChecker("storage", deps.StorageChecker)
	}
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Catalog: deps.Catalog,
		Orders:  deps.Orders,
		Search:  deps.Search,
		Tracker: deps.Tracker,
		Reports: deps.Reports,
		Admin:   deps.Admin,
		Ticket:  ticket.Options{CurrencySymbol: cfg.CurrencySymbol},
		Logger:  logger.WithField("layer", "http"),
	})
	apiSrv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP API слушает %s", lis.Addr())
		if err := apiSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		deps.Notifier.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// startMetricsServer запускает HTTP-обработчик /metrics и health-эндпоинты.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
