package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxLineQuantity bounds the quantity of a single cart line. The binding tags
// below repeat it as a literal.
const MaxLineQuantity = 100

type CartItem struct {
	ProductID      primitive.ObjectID `json:"product_id"`
	VariantID      primitive.ObjectID `json:"variant_id"`
	Quantity       int                `json:"quantity"`
	PriceAtAddTime int64              `json:"price_at_add_time"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// Find returns the index of the (product, variant) line, or -1.
func (c *Cart) Find(productID, variantID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			return i
		}
	}
	return -1
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,objectid"`
	VariantID string `json:"variant_id" binding:"required,objectid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
}

// UpdateCartItemRequest leaves quantity unchecked at binding time so the
// service can answer with the dedicated invalid-quantity error.
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,objectid"`
	VariantID string `json:"variant_id" binding:"required,objectid"`
	Quantity  int    `json:"quantity" binding:"max=100"`
}
