package models

import "github.com/google/uuid"

// Reference is a denormalized {id, name} snapshot of another document,
// embedded at write time and never kept in sync with later edits to the
// source record.
type Reference struct {
	ID   uuid.UUID `json:"id" bson:"id"`
	Name string    `json:"name" bson:"name"`
}
