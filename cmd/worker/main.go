package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RideBookingService/internal/config"
	"github.com/m04kA/SMC-RideBookingService/internal/integrations/notification"
	"github.com/m04kA/SMC-RideBookingService/pkg/logger"
	"github.com/m04kA/SMC-RideBookingService/pkg/metrics"
)

// Воркер доставляет подтверждения бронирований из очереди asynq
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if !cfg.Redis.Enabled {
		log.Fatal("Notification worker requires Redis, enable [redis] in config")
	}

	log.Info("Starting notification worker (queue=%s, concurrency=%d)...",
		cfg.Notification.Queue, cfg.Notification.WorkerConcurrency)

	var notifyMetrics notification.MetricsRecorder
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics.ServiceName + "_worker")
		notifyMetrics = m

		// порт воркера: HTTP порт API + 1
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort+1),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("Worker metrics exposed on %s%s", metricsSrv.Addr, cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Worker metrics server failed: %v", err)
			}
		}()
	}

	var sender notification.Sender = notification.NewLogMailer(log)
	if cfg.SMTP.Enabled {
		sender = notification.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		log.Info("SMTP delivery via %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Notification.WorkerConcurrency,
			Queues:      map[string]int{cfg.Notification.Queue: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Warn("Task %s failed: %v", task.Type(), err)
			}),
		},
	)

	taskMux := asynq.NewServeMux()
	notification.NewTaskHandler(sender, log, notifyMetrics).Register(taskMux)

	if err := srv.Start(taskMux); err != nil {
		log.Fatal("Failed to start worker: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")
	srv.Shutdown()

	if metricsSrv != nil {
		if err := metricsSrv.Close(); err != nil {
			log.Error("Failed to stop metrics server: %v", err)
		}
	}

	log.Info("Worker stopped gracefully")
}
