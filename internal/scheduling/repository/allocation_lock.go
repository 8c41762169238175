package repository

import (
	"context"
	"fmt"

	schedulingerrors "github.com/gautham-8087/Event-IQ/internal/scheduling/errors"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	"github.com/gautham-8087/Event-IQ/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const AllocationLockCollection = "allocation_locks"

// AllocationLockRepository implements advisory locks over the unique _id
// constraint: the insert either wins or collides. A TTL index on
// expires_at reaps locks abandoned by a crashed holder.
type AllocationLockRepository interface {
	Create(ctx context.Context, lock *model.AllocationLock) error
	Delete(ctx context.Context, id string) error
}

type mongoAllocationLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAllocationLockRepository(cfg *config.Config) AllocationLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAllocationLockRepository{
		cfg:        cfg,
		collection: db.Collection(AllocationLockCollection),
	}
}

func (r *mongoAllocationLockRepository) Create(ctx context.Context, lock *model.AllocationLock) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return schedulingerrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire allocation lock: %w", err)
	}
	return nil
}

func (r *mongoAllocationLockRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to release allocation lock: %w", err)
	}
	return nil
}
