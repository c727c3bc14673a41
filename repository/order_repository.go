package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Find(ctx context.Context, filter map[string]interface{}, limit, skip int) ([]models.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cursor, err := r.collection.Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context, filter map[string]interface{}) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M(filter))
}

// Replace writes the full order document. A non-nil expectedUpdatedAt
// makes the write conditional on the stored updated_at, so a stale admin
// session gets ErrConflict instead of silently clobbering another
// operator's transition.
func (r *OrderRepository) Replace(ctx context.Context, order *models.Order, expectedUpdatedAt *time.Time) error {
	filter := bson.M{"_id": order.ID}
	if expectedUpdatedAt != nil {
		filter["updated_at"] = *expectedUpdatedAt
	}

	res, err := r.collection.ReplaceOne(ctx, filter, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if expectedUpdatedAt == nil {
			return ErrNotFound
		}
		// Distinguish a missing order from a concurrent write.
		if n, err := r.collection.CountDocuments(ctx, bson.M{"_id": order.ID}); err == nil && n == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}
