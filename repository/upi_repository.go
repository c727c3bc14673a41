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

type UPIMethodRepository struct {
	collection *mongo.Collection
}

func NewUPIMethodRepository(db *mongo.Database) *UPIMethodRepository {
	return &UPIMethodRepository{collection: db.Collection("upi_methods")}
}

func (r *UPIMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.UPIMethod, error) {
	var method models.UPIMethod
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&method)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *UPIMethodRepository) FindAll(ctx context.Context) ([]models.UPIMethod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var methods []models.UPIMethod
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *UPIMethodRepository) Create(ctx context.Context, method *models.UPIMethod) error {
	_, err := r.collection.InsertOne(ctx, method)
	return err
}

func (r *UPIMethodRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
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

func (r *UPIMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
