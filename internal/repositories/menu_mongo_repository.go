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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMenuRepository is a MongoDB implementation of MenuRepository.
type MongoMenuRepository struct {
	coll *mongo.Collection
}

// NewMongoMenuRepository creates a new instance of MongoMenuRepository.
func NewMongoMenuRepository(db *mongo.Database) *MongoMenuRepository {
	return &MongoMenuRepository{coll: db.Collection(mongodb.MenuCollection)}
}

// GetAll returns every menu item.
func (r *MongoMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all menu items: %w", err)
	}
	return decodeAll[models.MenuItem](ctx, cur, mongodb.MenuCollection)
}

// Create inserts a menu item.
func (r *MongoMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = newDocumentID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// Update $sets the supplied fields and returns the updated item.
func (r *MongoMenuRepository) Update(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}

	var item models.MenuItem
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, idFilter(id), bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("menu item with ID %s not found for update: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return &item, nil
}

// Delete removes a menu item by its ID.
func (r *MongoMenuRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("menu item with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
