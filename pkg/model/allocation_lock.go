package model

import "time"

// AllocationLock is an advisory lock document serializing booking commits
// per resource. Acquired by unique _id insert, released after commit, and
// reaped by a TTL index if a holder crashes.
type AllocationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
