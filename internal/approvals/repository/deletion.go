package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	approvalerrors "github.com/gautham-8087/Event-IQ/internal/approvals/errors"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	"github.com/gautham-8087/Event-IQ/pkg/model"
)

const DeletionRequestCollection = "deletion_requests"

// DeletionRequestRepository persists deletion requests. A partial unique
// index on (event_id, status=pending) backs the one-pending-per-event rule
// at the storage layer.
type DeletionRequestRepository interface {
	Insert(ctx context.Context, request *model.DeletionRequest) error
	FindByID(ctx context.Context, id string) (*model.DeletionRequest, error)
	FindPending(ctx context.Context) ([]*model.DeletionRequest, error)
	FindPendingByEventID(ctx context.Context, eventID string) (*model.DeletionRequest, error)
	MarkReviewed(ctx context.Context, id string, status model.RequestStatus, reviewerID string) error
}

type mongoDeletionRequestRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDeletionRequestRepository(cfg *config.Config) DeletionRequestRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDeletionRequestRepository{
		cfg:        cfg,
		collection: db.Collection(DeletionRequestCollection),
	}
}

func (r *mongoDeletionRequestRepository) Insert(ctx context.Context, request *model.DeletionRequest) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	request.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, request); err != nil {
		return fmt.Errorf("failed to insert deletion request: %w", err)
	}
	return nil
}

func (r *mongoDeletionRequestRepository) FindByID(ctx context.Context, id string) (*model.DeletionRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var request model.DeletionRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, approvalerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deletion request: %w", err)
	}
	return &request, nil
}

func (r *mongoDeletionRequestRepository) FindPending(ctx context.Context) ([]*model.DeletionRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": model.RequestPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find deletion requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.DeletionRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode deletion requests: %w", err)
	}
	return requests, nil
}

func (r *mongoDeletionRequestRepository) FindPendingByEventID(ctx context.Context, eventID string) (*model.DeletionRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var request model.DeletionRequest
	err := r.collection.FindOne(ctx, bson.M{"event_id": eventID, "status": model.RequestPending}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, approvalerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pending deletion request: %w", err)
	}
	return &request, nil
}

func (r *mongoDeletionRequestRepository) MarkReviewed(ctx context.Context, id string, status model.RequestStatus, reviewerID string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.RequestPending},
		bson.M{"$set": bson.M{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark deletion request reviewed: %w", err)
	}
	if result.MatchedCount == 0 {
		return approvalerrors.ErrAlreadyReviewed
	}
	return nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
