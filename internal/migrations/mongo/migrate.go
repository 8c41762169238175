package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gautham-8087/Event-IQ/internal/migrations/mongo/validators"
)

var (
	ResourceIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "seq", Value: 1}}},
	}

	EventIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{
			{Key: "start_time", Value: 1},
			{Key: "end_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "creator", Value: 1}}},
	}

	AllocationIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "resource_id", Value: 1}}},
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "event_id", Value: 1},
				{Key: "resource_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	// Expired locks are reaped by Mongo itself; the booking path deleting
	// them promptly is only an optimization.
	AllocationLockIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	PendingRequestIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "requested_by", Value: 1}}},
	}

	// At most one pending deletion request per event.
	DeletionRequestIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "pending"}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	ArchivedEventIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "recorded_at", Value: 1}}},
		{Keys: bson.D{{Key: "event._id", Value: 1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"resources": {
			Indexes:   ResourceIndexes,
			Validator: validators.ResourceValidator,
		},
		"events": {
			Indexes:   EventIndexes,
			Validator: validators.EventValidator,
		},
		"allocations": {
			Indexes:   AllocationIndexes,
			Validator: validators.AllocationValidator,
		},
		"allocation_locks": {
			Indexes:   AllocationLockIndexes,
			Validator: validators.AllocationLockValidator,
		},
		"pending_event_requests": {
			Indexes:   PendingRequestIndexes,
			Validator: validators.PendingEventRequestValidator,
		},
		"deletion_requests": {
			Indexes:   DeletionRequestIndexes,
			Validator: validators.DeletionRequestValidator,
		},
		"archived_events": {
			Indexes: ArchivedEventIndexes,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator != nil {
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}
