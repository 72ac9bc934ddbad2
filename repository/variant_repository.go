package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vinayyy19/Furnista/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VariantRepository struct {
	collection *mongo.Collection
}

func NewVariantRepository(db *mongo.Database) *VariantRepository {
	return &VariantRepository{
		collection: db.Collection("variants"),
	}
}

func (r *VariantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {
	var variant models.Variant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&variant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *VariantRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Variant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var variants []*models.Variant
	if err := cursor.All(ctx, &variants); err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]*models.Variant, len(variants))
	for _, v := range variants {
		out[v.ID] = v
	}
	return out, nil
}

func (r *VariantRepository) Create(ctx context.Context, variant *models.Variant) error {
	if variant.StockQty < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	now := time.Now().UTC()
	if variant.ID.IsZero() {
		variant.ID = primitive.NewObjectID()
	}
	variant.CreatedAt, variant.UpdatedAt = now, now
	_, err := r.collection.InsertOne(ctx, variant)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *VariantRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
		{Keys: bson.D{{Key: "color", Value: 1}, {Key: "size", Value: 1}}},
		{
			Keys: bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"sku": bson.M{"$type": "string"}}),
		},
	})
	return err
}

// MongoInventory keeps stock on the variant documents themselves.
type MongoInventory struct {
	collection *mongo.Collection
}

func NewMongoInventory(db *mongo.Database) *MongoInventory {
	return &MongoInventory{collection: db.Collection("variants")}
}

// Decrement removes qty units only if at least qty are available. The filter
// and the $inc are evaluated as one document operation, so two callers can
// never both take the last units.
func (m *MongoInventory) Decrement(ctx context.Context, variantID primitive.ObjectID, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be >= 1")
	}

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": variantID, "stock_qty": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock_qty": -qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// Nothing matched: tell a missing variant apart from a short one.
	n, err := m.collection.CountDocuments(ctx, bson.M{"_id": variantID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrInsufficientStock
}

func (m *MongoInventory) Increment(ctx context.Context, variantID primitive.ObjectID, qty int) error {
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": variantID},
		bson.M{
			"$inc": bson.M{"stock_qty": qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoInventory) Available(ctx context.Context, variantID primitive.ObjectID) (int, error) {
	var doc struct {
		StockQty int `bson:"stock_qty"`
	}
	err := m.collection.FindOne(ctx, bson.M{"_id": variantID},
		options.FindOne().SetProjection(bson.M{"stock_qty": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return doc.StockQty, nil
}

func (m *MongoInventory) SetStock(ctx context.Context, variantID primitive.ObjectID, qty int) error {
	if qty < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": variantID},
		bson.M{"$set": bson.M{"stock_qty": qty, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
