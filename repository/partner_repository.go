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

type DeliveryPartnerRepository struct {
	collection *mongo.Collection
}

func NewDeliveryPartnerRepository(db *mongo.Database) *DeliveryPartnerRepository {
	return &DeliveryPartnerRepository{collection: db.Collection("delivery_partners")}
}

func (r *DeliveryPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryPartner, error) {
	var partner models.DeliveryPartner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&partner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *DeliveryPartnerRepository) FindAll(ctx context.Context) ([]models.DeliveryPartner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []models.DeliveryPartner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *DeliveryPartnerRepository) Create(ctx context.Context, partner *models.DeliveryPartner) error {
	_, err := r.collection.InsertOne(ctx, partner)
	return err
}

func (r *DeliveryPartnerRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(updates)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DeliveryPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
