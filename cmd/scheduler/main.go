package main

import (
	"context"

	approvalshandler "github.com/gautham-8087/Event-IQ/internal/approvals/handler"
	approvalsrepo "github.com/gautham-8087/Event-IQ/internal/approvals/repository"
	approvalsservice "github.com/gautham-8087/Event-IQ/internal/approvals/service"
	"github.com/gautham-8087/Event-IQ/internal/archive"
	assistanthandler "github.com/gautham-8087/Event-IQ/internal/assistant/handler"
	assistantservice "github.com/gautham-8087/Event-IQ/internal/assistant/service"
	cataloghandler "github.com/gautham-8087/Event-IQ/internal/catalog/handler"
	catalogrepo "github.com/gautham-8087/Event-IQ/internal/catalog/repository"
	catalogservice "github.com/gautham-8087/Event-IQ/internal/catalog/service"
	schedulinghandler "github.com/gautham-8087/Event-IQ/internal/scheduling/handler"
	schedulingrepo "github.com/gautham-8087/Event-IQ/internal/scheduling/repository"
	schedulingservice "github.com/gautham-8087/Event-IQ/internal/scheduling/service"
	"github.com/gautham-8087/Event-IQ/internal/scheduling/validator"
	"github.com/gautham-8087/Event-IQ/pkg/app"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	"github.com/gautham-8087/Event-IQ/pkg/contracts"
	"github.com/gautham-8087/Event-IQ/pkg/kafka"
)

const ServiceName = "scheduler"

func main() {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Scheduler service")
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer cfg.Client.CloseMongo(context.Background(), cfg.Log)

	archiveLog, closeArchive := initArchiveLog(cfg)
	defer closeArchive()

	handlers := initHandlers(cfg, archiveLog)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handlers...)
	serverApp.Run()
}

func initArchiveLog(cfg *config.Config) (archive.Log, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("No Kafka brokers configured, archive log disabled")
		return archive.NopLog{}, func() {}
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.ArchiveTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create archive producer", "error", err)
	}
	closeFn := func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close archive producer", "error", err)
		}
	}
	return archive.NewKafkaLog(producer), closeFn
}

func initHandlers(cfg *config.Config, archiveLog archive.Log) []contracts.Handler {
	eventValidator := validator.NewEventValidator(cfg.Log)

	resourceRepo := catalogrepo.NewMongoResourceRepository(cfg)
	eventRepo := schedulingrepo.NewMongoEventRepository(cfg)
	allocRepo := schedulingrepo.NewMongoAllocationRepository(cfg)
	lockRepo := schedulingrepo.NewMongoAllocationLockRepository(cfg)
	pendingRepo := approvalsrepo.NewMongoPendingRequestRepository(cfg)
	deletionRepo := approvalsrepo.NewMongoDeletionRequestRepository(cfg)

	catalog := catalogservice.NewCatalogService(resourceRepo, cfg)
	availability := schedulingservice.NewAvailabilityService(catalog, eventRepo, allocRepo, cfg)
	coordinator := schedulingservice.NewCoordinatorService(
		cfg,
		eventRepo,
		allocRepo,
		lockRepo,
		catalog,
		availability,
		eventValidator,
		archiveLog,
	)
	workflow := approvalsservice.NewWorkflowService(
		cfg,
		pendingRepo,
		deletionRepo,
		eventRepo,
		coordinator,
		eventValidator,
	)
	assistant := assistantservice.NewAssistantService(cfg, availability, coordinator, workflow)

	cfg.Log.Info("Scheduler services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		cataloghandler.NewResourceHandler(catalog, cfg.Log),
		schedulinghandler.NewEventHandler(coordinator, availability, cfg.Log),
		approvalshandler.NewApprovalHandler(workflow, cfg.Log),
		assistanthandler.NewIntentHandler(assistant, cfg.Log),
	}
}
