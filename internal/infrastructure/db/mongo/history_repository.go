package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

const viewsCollection = "product_views"

// HistoryRepository implements ports.HistoryRepository using MongoDB. A view
// upserts on (user_id, product_id) so a revisit moves the product to the top
// of the list instead of duplicating it.
type HistoryRepository struct {
	db *mongo.Database
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *mongo.Database) ports.HistoryRepository {
	return &HistoryRepository{db: db}
}

type viewDoc struct {
	UserID      int64     `bson:"user_id"`
	ProductID   int64     `bson:"product_id"`
	ProductName string    `bson:"product_name"`
	ImageURL    string    `bson:"image_url,omitempty"`
	Price       int       `bson:"price"`
	ViewedAt    time.Time `bson:"viewed_at"`
}

// Record upserts one product view.
func (r *HistoryRepository) Record(ctx context.Context, view domain.ProductView) error {
	filter := bson.M{"user_id": view.UserID, "product_id": view.ProductID}
	update := bson.M{
		"$set": bson.M{
			"product_name": view.ProductName,
			"image_url":    view.ImageURL,
			"price":        view.Price,
			"viewed_at":    view.ViewedAt.UTC(),
		},
	}

	_, err := r.db.Collection(viewsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("record product view: %w", err)
	}
	return nil
}

// Recent returns the user's latest views, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, userID int64, limit int) ([]domain.ProductView, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "viewed_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.db.Collection(viewsCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find product views: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []viewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode product views: %w", err)
	}

	views := make([]domain.ProductView, len(docs))
	for i, d := range docs {
		views[i] = domain.ProductView{
			UserID:      d.UserID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			ImageURL:    d.ImageURL,
			Price:       d.Price,
			ViewedAt:    d.ViewedAt,
		}
	}
	return views, nil
}
