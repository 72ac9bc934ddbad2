package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Vinayyy19/Furnista/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicate         = errors.New("duplicate key")
)

type ProductRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type CategoryRepo interface {
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

type VariantRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Variant, error)
	Create(ctx context.Context, variant *models.Variant) error
}

// InventoryLedger is the per-variant stock counter. Decrement is a single
// conditional operation: it either removes qty units or changes nothing.
type InventoryLedger interface {
	Decrement(ctx context.Context, variantID primitive.ObjectID, qty int) error
	Increment(ctx context.Context, variantID primitive.ObjectID, qty int) error
	Available(ctx context.Context, variantID primitive.ObjectID) (int, error)
	SetStock(ctx context.Context, variantID primitive.ObjectID, qty int) error
}

// CartRepo stores one cart per user. Update runs fn against the current cart
// (an empty one when none exists) and persists the result atomically.
type CartRepo interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Update(ctx context.Context, userID string, fn func(cart *models.Cart) error) (*models.Cart, error)
}

// IdempotencyStore is a fast-path cache of confirmation id -> order id.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByConfirmationID(ctx context.Context, confirmationID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	// UpdateStatus sets the status and appends event in one write. When from
	// is non-nil the write only applies if the stored status still equals it.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from *models.OrderStatus, to models.OrderStatus, event models.OrderEvent) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ContactRepo interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	FindAll(ctx context.Context, page, limit int) ([]models.ContactMessage, int64, error)
}
