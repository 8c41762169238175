package repository

import (
	"context"
	"fmt"

	"github.com/gautham-8087/Event-IQ/pkg/config"
	"github.com/gautham-8087/Event-IQ/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const AllocationCollection = "allocations"

// AllocationRepository persists resource-to-event edges. Queries are
// indexed by resource_id so availability checks never scan the full
// collection.
type AllocationRepository interface {
	Insert(ctx context.Context, allocation *model.Allocation) error
	FindByResourceID(ctx context.Context, resourceID string) ([]*model.Allocation, error)
	FindByEventID(ctx context.Context, eventID string) ([]*model.Allocation, error)
	DeleteByEventID(ctx context.Context, eventID string) error
}

type mongoAllocationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAllocationRepository(cfg *config.Config) AllocationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAllocationRepository{
		cfg:        cfg,
		collection: db.Collection(AllocationCollection),
	}
}

func (r *mongoAllocationRepository) Insert(ctx context.Context, allocation *model.Allocation) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, allocation); err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

func (r *mongoAllocationRepository) FindByResourceID(ctx context.Context, resourceID string) ([]*model.Allocation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"resource_id": resourceID})
	if err != nil {
		return nil, fmt.Errorf("failed to find allocations by resource: %w", err)
	}
	defer cursor.Close(ctx)

	var allocations []*model.Allocation
	if err = cursor.All(ctx, &allocations); err != nil {
		return nil, fmt.Errorf("failed to decode allocations: %w", err)
	}
	return allocations, nil
}

func (r *mongoAllocationRepository) FindByEventID(ctx context.Context, eventID string) ([]*model.Allocation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to find allocations by event: %w", err)
	}
	defer cursor.Close(ctx)

	var allocations []*model.Allocation
	if err = cursor.All(ctx, &allocations); err != nil {
		return nil, fmt.Errorf("failed to decode allocations: %w", err)
	}
	return allocations, nil
}

func (r *mongoAllocationRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return fmt.Errorf("failed to delete allocations for event: %w", err)
	}
	return nil
}
