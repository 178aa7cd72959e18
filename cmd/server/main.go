package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bikerental/internal/audit"
	"bikerental/internal/config"
	"bikerental/internal/logger"
	"bikerental/internal/server"
	"bikerental/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	st := store.New(cfg.StoreName, cfg.StoreAddress)

	var producer audit.Producer
	if len(cfg.KafkaBrokers) > 0 {
		log.Info("audit events go to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.AuditTopic))
		producer = audit.NewKafkaProducer(cfg.KafkaBrokers, cfg.AuditTopic)
	} else {
		log.Info("no kafka brokers configured, audit events go to the log")
		producer = audit.NewConsoleProducer(log)
	}

	auditManager := audit.NewManager(producer, log, cfg.AuditWorkers, cfg.AuditBatchSize, cfg.AuditFlushEvery)
	auditManager.Start(ctx)

	srv := server.New(st, auditManager, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(cfg.HTTPPort)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer flushCancel()
	auditManager.Shutdown(flushCtx)

	log.Info("server gracefully stopped")
}
