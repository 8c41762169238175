package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gautham-8087/Event-IQ/pkg/model"
)

var seedResources = []model.Resource{
	{ID: "R1", Type: model.ResourceRoom, Name: "Main Auditorium", Capacity: 120, Seq: 1},
	{ID: "R2", Type: model.ResourceRoom, Name: "Lecture Hall B", Capacity: 60, Seq: 2},
	{ID: "R3", Type: model.ResourceRoom, Name: "Seminar Room 1", Capacity: 25, Seq: 3},
	{ID: "R4", Type: model.ResourceRoom, Name: "Computer Lab", Capacity: 30, Seq: 4},
	{ID: "I1", Type: model.ResourceInstructor, Name: "Dr. Chen", Specialization: "physics", Seq: 5},
	{ID: "I2", Type: model.ResourceInstructor, Name: "Prof. Okafor", Specialization: "mathematics", Seq: 6},
	{ID: "I3", Type: model.ResourceInstructor, Name: "Ms. Alvarez", Specialization: "computer science", Seq: 7},
	{ID: "E1", Type: model.ResourceEquipment, Name: "Projector", Seq: 8},
	{ID: "E2", Type: model.ResourceEquipment, Name: "Video Conference Kit", Seq: 9},
	{ID: "E3", Type: model.ResourceEquipment, Name: "Lab Instrument Cart", Seq: 10},
}

// SeedCatalog inserts the starter resource catalog. It is a no-op when the
// collection already holds data, so re-running migrations is safe.
func SeedCatalog(ctx context.Context, client *mongo.Client, dbName string) error {
	coll := client.Database(dbName).Collection("resources")

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count resources: %w", err)
	}
	if count > 0 {
		fmt.Printf("Catalog already holds %d resources, skipping seed\n", count)
		return nil
	}

	docs := make([]any, 0, len(seedResources))
	for _, r := range seedResources {
		docs = append(docs, r)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed resources: %w", err)
	}

	fmt.Printf("Seeded %d catalog resources\n", len(seedResources))
	return nil
}
