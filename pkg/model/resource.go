package model

type ResourceType string

const (
	ResourceRoom       ResourceType = "Room"
	ResourceInstructor ResourceType = "Instructor"
	ResourceEquipment  ResourceType = "Equipment"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceRoom, ResourceInstructor, ResourceEquipment:
		return true
	}
	return false
}

// Resource is a bookable entity. The catalog is seeded out of band and
// treated as read-only at runtime; Seq preserves catalog insertion order
// so listings are deterministic.
type Resource struct {
	ID             string            `json:"id" bson:"_id" validate:"required"`
	Type           ResourceType      `json:"type" bson:"type" validate:"required,oneof=Room Instructor Equipment"`
	Name           string            `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Capacity       int               `json:"capacity,omitempty" bson:"capacity,omitempty" validate:"omitempty,min=1"`
	Specialization string            `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Seq            int               `json:"-" bson:"seq"`
}

// ResourceFilter narrows a catalog listing. MinCapacity applies to
// resources that declare a capacity; Specialization is a case-insensitive
// substring match against the free-text specialization field, a loose
// heuristic rather than a structured taxonomy.
type ResourceFilter struct {
	MinCapacity    int
	Specialization string
}
