package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gautham-8087/Event-IQ/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
)

const ArchiveCollection = "archived_events"

// Recorder consumes lifecycle records and appends them to the archive
// collection. Insert failures leave the message uncommitted so the record
// is not lost.
type Recorder struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewRecorder(cfg *config.Config) *Recorder {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &Recorder{
		cfg:        cfg,
		collection: db.Collection(ArchiveCollection),
	}
}

// Handle implements the consumer callback for one record.
func (r *Recorder) Handle(ctx context.Context, key, value []byte) error {
	var record Record
	if err := json.Unmarshal(value, &record); err != nil {
		// Malformed records can never succeed later; log and commit.
		r.cfg.Log.Error("Dropping malformed archive record", "key", string(key), "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc := struct {
		Record     `bson:",inline"`
		RecordedAt time.Time `bson:"recorded_at"`
	}{
		Record:     record,
		RecordedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to append archive record: %w", err)
	}

	r.cfg.Log.Info("Archive record stored",
		"action", record.Action,
		"event_id", record.Event.ID,
	)
	return nil
}
