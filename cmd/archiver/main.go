package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gautham-8087/Event-IQ/internal/archive"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	"github.com/gautham-8087/Event-IQ/pkg/kafka"
)

const ServiceName = "archiver"

func main() {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()

	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Fatal("Archiver requires Kafka brokers to be configured")
	}

	cfg.Log.Info("Starting Archiver worker")
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer cfg.Client.CloseMongo(context.Background(), cfg.Log)

	recorder := archive.NewRecorder(cfg)
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.ArchiveTopic, cfg.ArchiveGroup, recorder.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create archive consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- consumer.Start(ctx)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			cfg.Log.Error("Consumer stopped with error", "error", err)
		}
	case sig := <-shutdown:
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
		<-done
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Archiver stopped")
}
