package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContactTypeContactUs = "contactUs"
	ContactTypeBulkOrder = "bulkOrder"
)

type ContactMessage struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Mobile      string             `json:"mobile" bson:"mobile"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description" bson:"description"`
	Pincode     string             `json:"pincode" bson:"pincode"`
	Type        string             `json:"type" bson:"type"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

type ContactRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	Mobile      string `json:"mobile" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
}

type BulkOrderRequest struct {
	Name         string `json:"name" binding:"required,min=2"`
	Email        string `json:"email" binding:"required,email"`
	Mobile       string `json:"mobile" binding:"required"`
	Organisation string `json:"organisation" binding:"required"`
	Requirements string `json:"requirements" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
}

type ContactList struct {
	Messages []ContactMessage `json:"messages"`
	Meta     MetaData         `json:"meta"`
}
