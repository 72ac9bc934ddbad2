package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	ImageURL      string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	ImagePublicID string             `json:"image_public_id,omitempty" bson:"image_public_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

type ProductImage struct {
	URL       string `json:"url" bson:"url"`
	PublicID  string `json:"public_id" bson:"public_id"`
	IsPrimary bool   `json:"is_primary" bson:"is_primary"`
}

type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CategoryID  primitive.ObjectID `json:"category_id" bson:"category_id"`
	Material    string             `json:"material" bson:"material"`
	Dimensions  string             `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	Images      []ProductImage     `json:"images" bson:"images"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Variant is a purchasable color/size configuration of a product. Prices are
// whole currency units.
type Variant struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID    primitive.ObjectID `json:"product_id" bson:"product_id"`
	Color        string             `json:"color" bson:"color"`
	Size         string             `json:"size" bson:"size"`
	SellingPrice int64              `json:"selling_price" bson:"selling_price"`
	MarketPrice  int64              `json:"market_price" bson:"market_price"`
	StockQty     int                `json:"stock_qty" bson:"stock_qty"`
	SKU          string             `json:"sku,omitempty" bson:"sku,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
