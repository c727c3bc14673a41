package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID `json:"_id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Price         float64   `json:"price" bson:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty" bson:"discount_price,omitempty"`
	Unit          string    `json:"unit,omitempty" bson:"unit,omitempty"`
	Stock         int       `json:"stock" bson:"stock"`
	Images        []string  `json:"images" bson:"images"`
	IsActive      bool      `json:"is_active" bson:"is_active"`

	// Vendors and Categories are snapshots taken when the product is
	// saved; renaming a vendor or category later does not rewrite them.
	Vendors    []Reference `json:"vendors" bson:"vendors"`
	Categories []Reference `json:"categories" bson:"categories"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
