package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned by guarded updates when the document changed
	// since the caller last read it.
	ErrConflict = errors.New("document modified by another writer")
)

// Repositories use plain Go types (no mongo-driver types) so services and
// tests can swap adapters freely.

type ProductRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Find(ctx context.Context, filter map[string]interface{}, limit, skip int) ([]models.Product, error)
	Count(ctx context.Context, filter map[string]interface{}) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VendorRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindAll(ctx context.Context) ([]models.Vendor, error)
	Create(ctx context.Context, vendor *models.Vendor) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Find(ctx context.Context, filter map[string]interface{}, limit, skip int) ([]models.User, error)
	Count(ctx context.Context, filter map[string]interface{}) (int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DeliveryPartnerRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryPartner, error)
	FindAll(ctx context.Context) ([]models.DeliveryPartner, error)
	Create(ctx context.Context, partner *models.DeliveryPartner) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UPIMethodRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.UPIMethod, error)
	FindAll(ctx context.Context) ([]models.UPIMethod, error)
	Create(ctx context.Context, method *models.UPIMethod) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Find(ctx context.Context, filter map[string]interface{}, limit, skip int) ([]models.Order, error)
	Count(ctx context.Context, filter map[string]interface{}) (int64, error)
	// Replace writes the whole order document. When expectedUpdatedAt is
	// non-nil the write only applies if the stored updated_at still
	// matches, returning ErrConflict otherwise; with nil it is plain
	// last-writer-wins.
	Replace(ctx context.Context, order *models.Order, expectedUpdatedAt *time.Time) error
}

type TimeSlotRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.TimeSlot, error)
	FindAll(ctx context.Context) ([]models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimeRulesRepo reads and replaces the singleton rules document.
type TimeRulesRepo interface {
	Get(ctx context.Context) (models.TimeRulesConfig, error)
	Save(ctx context.Context, rules models.TimeRulesConfig) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit, skip int) ([]models.Notification, error)
}

type NotificationLogRepo interface {
	Append(ctx context.Context, log *models.NotificationLog) error
	Recent(ctx context.Context, limit int) ([]models.NotificationLog, error)
}
