package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
)

const timeRulesDocID = "time_rules"

type timeRulesDoc struct {
	ID        string                 `bson:"_id"`
	Rules     models.TimeRulesConfig `bson:"rules"`
	UpdatedAt time.Time              `bson:"updated_at"`
}

// TimeRulesRepository stores the whole slot->categories mapping as one
// document in the settings collection. Saves replace the document in a
// single write: last writer wins, no merge of concurrent edits.
type TimeRulesRepository struct {
	collection *mongo.Collection
}

func NewTimeRulesRepository(db *mongo.Database) *TimeRulesRepository {
	return &TimeRulesRepository{collection: db.Collection("settings")}
}

func (r *TimeRulesRepository) Get(ctx context.Context) (models.TimeRulesConfig, error) {
	var doc timeRulesDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": timeRulesDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TimeRulesConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Rules == nil {
		doc.Rules = models.TimeRulesConfig{}
	}
	return doc.Rules, nil
}

func (r *TimeRulesRepository) Save(ctx context.Context, rules models.TimeRulesConfig) error {
	doc := timeRulesDoc{
		ID:        timeRulesDocID,
		Rules:     rules,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": timeRulesDocID}, doc, opts)
	return err
}
