package main

import (
	"context"
	"fmt"
	"time"

	mongomigration "github.com/gautham-8087/Event-IQ/internal/migrations/mongo"
	"github.com/gautham-8087/Event-IQ/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job")
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer cfg.Client.CloseMongo(context.Background(), cfg.Log)

	if err := mongomigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	if err := mongomigration.SeedCatalog(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Catalog seed failed", "error", err)
	}

	fmt.Println("Migration completed successfully.")
}
