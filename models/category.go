package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	SortOrder int       `json:"sort_order" bson:"sort_order"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Ref returns the denormalized snapshot embedded on products and time rules.
func (c *Category) Ref() Reference {
	return Reference{ID: c.ID, Name: c.Name}
}
