package models

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryPartner struct {
	ID        uuid.UUID `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Vehicle   string    `json:"vehicle,omitempty" bson:"vehicle,omitempty"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *DeliveryPartner) Ref() Reference {
	return Reference{ID: p.ID, Name: p.Name}
}
