package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ivr/internal/models"
	"ivr/pkg/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(mongodb.CartsCollection)}
}

// GetByUserID finds the cart of userID.
func (r *MongoCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	return &cart, nil
}

// Create inserts a new cart document.
func (r *MongoCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = newDocumentID()
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// UpdateItems $sets the line sequence of the cart of userID.
func (r *MongoCartRepository) UpdateItems(ctx context.Context, userID string, items []models.CartLine) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": bson.M{"items": items}})
	if err != nil {
		return fmt.Errorf("failed to update cart items: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("cart for user %s not found for update: %w", userID, ErrNotFound)
	}
	return nil
}

// DeleteByUserID deletes the cart of userID, if any.
func (r *MongoCartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
