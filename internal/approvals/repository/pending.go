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

const PendingRequestCollection = "pending_event_requests"

// PendingRequestRepository persists booking proposals awaiting review.
// MarkReviewed filters on pending status, so a request that has already
// been reviewed cannot be flipped a second time.
type PendingRequestRepository interface {
	Insert(ctx context.Context, request *model.PendingEventRequest) error
	FindByID(ctx context.Context, id string) (*model.PendingEventRequest, error)
	FindPending(ctx context.Context) ([]*model.PendingEventRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]*model.PendingEventRequest, error)
	MarkReviewed(ctx context.Context, id string, status model.RequestStatus, reviewerID, reason string) error
}

type mongoPendingRequestRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPendingRequestRepository(cfg *config.Config) PendingRequestRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPendingRequestRepository{
		cfg:        cfg,
		collection: db.Collection(PendingRequestCollection),
	}
}

func (r *mongoPendingRequestRepository) Insert(ctx context.Context, request *model.PendingEventRequest) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	request.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, request); err != nil {
		return fmt.Errorf("failed to insert pending request: %w", err)
	}
	return nil
}

func (r *mongoPendingRequestRepository) FindByID(ctx context.Context, id string) (*model.PendingEventRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var request model.PendingEventRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, approvalerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pending request: %w", err)
	}
	return &request, nil
}

func (r *mongoPendingRequestRepository) FindPending(ctx context.Context) ([]*model.PendingEventRequest, error) {
	return r.find(ctx, bson.M{"status": model.RequestPending})
}

func (r *mongoPendingRequestRepository) FindByRequester(ctx context.Context, requesterID string) ([]*model.PendingEventRequest, error) {
	return r.find(ctx, bson.M{"requested_by": requesterID})
}

func (r *mongoPendingRequestRepository) find(ctx context.Context, filter bson.M) ([]*model.PendingEventRequest, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.PendingEventRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode pending requests: %w", err)
	}
	return requests, nil
}

func (r *mongoPendingRequestRepository) MarkReviewed(ctx context.Context, id string, status model.RequestStatus, reviewerID, reason string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": bson.M{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}}
	if reason != "" {
		update["$set"].(bson.M)["rejection_reason"] = reason
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": model.RequestPending}, update)
	if err != nil {
		return fmt.Errorf("failed to mark request reviewed: %w", err)
	}
	if result.MatchedCount == 0 {
		return approvalerrors.ErrAlreadyReviewed
	}
	return nil
}
