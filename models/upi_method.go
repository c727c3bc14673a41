package models

import (
	"time"

	"github.com/google/uuid"
)

// UPIMethod is a payment-receiving VPA the marketplace shows to customers,
// together with the QR code image uploaded by an operator.
type UPIMethod struct {
	ID        uuid.UUID `json:"_id" bson:"_id"`
	PayeeName string    `json:"payee_name" bson:"payee_name"`
	VPA       string    `json:"vpa" bson:"vpa"`
	QRCodeURL string    `json:"qr_code_url,omitempty" bson:"qr_code_url,omitempty"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
