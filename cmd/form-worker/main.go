// cmd/form-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"job-application-form/internal/common/camunda"
	"job-application-form/internal/common/config"
	"job-application-form/internal/common/logger"
	"job-application-form/internal/common/observability"

	vja "job-application-form/internal/workers/application/validate-job-application"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("starting form worker",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.Bool("exemptInapplicableFields", cfg.Form.ExemptInapplicableFields),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	zeebe, err := camunda.NewClientWithConfig(&camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig: &camunda.RetryConfig{
			MaxRetries: 10,
			BaseDelay:  2 * time.Second,
			MaxDelay:   30 * time.Second,
		},
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("zeebe client connected", zap.String("address", cfg.Camunda.BrokerAddress))

	var workers []*camunda.CamundaWorker

	wcfg := vja.FromAppConfig(cfg)
	if err := wcfg.Validate(); err != nil {
		zapLog.Fatal("invalid worker configuration", zap.String("taskType", vja.TaskType), zap.Error(err))
	}
	if wcfg.Enabled {
		handler := vja.NewHandler(wcfg, log, obs)
		workers = append(workers, camunda.NewWorker(zeebe.GetClient(), vja.TaskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       wcfg.Timeout,
		}, handler, log))
		zapLog.Info("worker started",
			zap.String("taskType", vja.TaskType),
			zap.Int("maxJobsActive", wcfg.MaxJobsActive),
			zap.Duration("timeout", wcfg.Timeout),
		)
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", vja.TaskType))
	}

	var ready atomic.Bool
	ready.Store(true)
	srv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newServeMux(zeebe, &ready),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers")
	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("error closing zeebe client", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health/metrics server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping meter provider", zap.Error(err))
	}

	zapLog.Info("form worker stopped")
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newServeMux(zeebe healthChecker, ready *atomic.Bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			writeStatus(w, http.StatusServiceUnavailable, "stopping")
			return
		}
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "zeebe unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
