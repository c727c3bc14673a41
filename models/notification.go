package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

const (
	NotificationTypeOrderStatus     = "order_status"
	NotificationTypePaymentVerified = "payment_verified"
	NotificationTypePaymentRejected = "payment_rejected"
)

// Notification is the customer-facing in-app message written to the
// document store when an order transition fires.
type Notification struct {
	ID        uuid.UUID            `json:"_id" bson:"_id"`
	UserID    uuid.UUID            `json:"user_id" bson:"user_id"`
	OrderID   *uuid.UUID           `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Type      string               `json:"type" bson:"type"`
	Title     string               `json:"title" bson:"title"`
	Message   string               `json:"message" bson:"message"`
	Priority  NotificationPriority `json:"priority" bson:"priority"`
	IsRead    bool                 `json:"is_read" bson:"is_read"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// NotificationLog is the SQL audit row recorded for every notification the
// admin surface emits, whether or not the document write succeeded.
type NotificationLog struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id"`
	OrderID   string    `json:"order_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
