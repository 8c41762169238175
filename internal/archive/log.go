// Package archive maintains the append-only lifecycle log for events. The
// scheduler publishes records to a Kafka topic; the archiver worker copies
// them into a durable collection. The log is an auxiliary collaborator:
// publish failures are logged, never allowed to fail a booking or delete.
package archive

import (
	"context"
	"time"

	"github.com/gautham-8087/Event-IQ/pkg/kafka"
	"github.com/gautham-8087/Event-IQ/pkg/model"
)

const (
	ActionScheduled = "scheduled"
	ActionArchived  = "archived"
)

// Record is one entry in the lifecycle log.
type Record struct {
	Action      string       `json:"action" bson:"action"`
	Event       *model.Event `json:"event" bson:"event"`
	ResourceIDs []string     `json:"resource_ids,omitempty" bson:"resource_ids,omitempty"`
	Actor       string       `json:"actor,omitempty" bson:"actor,omitempty"`
	At          time.Time    `json:"at" bson:"at"`
}

type Log interface {
	Append(ctx context.Context, record Record) error
}

type kafkaLog struct {
	producer *kafka.Producer
}

func NewKafkaLog(producer *kafka.Producer) Log {
	return &kafkaLog{producer: producer}
}

func (l *kafkaLog) Append(ctx context.Context, record Record) error {
	if record.At.IsZero() {
		record.At = time.Now().UTC()
	}
	return l.producer.Publish(ctx, record.Event.ID, record)
}

// NopLog discards records. Used when no brokers are configured.
type NopLog struct{}

func (NopLog) Append(context.Context, Record) error { return nil }
