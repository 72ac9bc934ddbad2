package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusBooked    OrderStatus = "BOOKED"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPacked    OrderStatus = "PACKED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
)

// orderStatusRank is the linear order of the lifecycle.
var orderStatusRank = map[OrderStatus]int{
	StatusBooked:    0,
	StatusConfirmed: 1,
	StatusPacked:    2,
	StatusShipped:   3,
	StatusDelivered: 4,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// EventType is the event-log type recorded when an order enters s.
func (s OrderStatus) EventType() string {
	return "ORDER_" + string(s)
}

// CanTransition reports whether from -> to moves strictly forward.
func CanTransition(from, to OrderStatus) bool {
	f, okFrom := orderStatusRank[from]
	t, okTo := orderStatusRank[to]
	return okFrom && okTo && t > f
}

const (
	ActorSystem = "SYSTEM"
	ActorAdmin  = "ADMIN"
)

type OrderItem struct {
	ProductID   primitive.ObjectID `json:"product_id" bson:"product_id"`
	VariantID   primitive.ObjectID `json:"variant_id" bson:"variant_id"`
	ProductName string             `json:"product_name" bson:"product_name"`
	Color       string             `json:"color,omitempty" bson:"color,omitempty"`
	Size        string             `json:"size,omitempty" bson:"size,omitempty"`
	UnitPrice   int64              `json:"unit_price" bson:"unit_price"`
	MarketPrice int64              `json:"market_price,omitempty" bson:"market_price,omitempty"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	Subtotal    int64              `json:"subtotal" bson:"subtotal"`
}

type Pricing struct {
	ItemsTotal  int64 `json:"items_total" bson:"items_total"`
	ShippingFee int64 `json:"shipping_fee" bson:"shipping_fee"`
	FinalAmount int64 `json:"final_amount" bson:"final_amount"`
}

// NewPricing sums the line subtotals and adds the flat fee to any non-empty
// total.
func NewPricing(items []OrderItem, shippingFee int64) Pricing {
	var total int64
	for _, it := range items {
		total += it.Subtotal
	}
	p := Pricing{ItemsTotal: total}
	if total > 0 {
		p.ShippingFee = shippingFee
	}
	p.FinalAmount = p.ItemsTotal + p.ShippingFee
	return p
}

type PaymentCorrelation struct {
	IntentID       string `json:"intent_id" bson:"intent_id"`
	ConfirmationID string `json:"confirmation_id" bson:"confirmation_id"`
}

type Address struct {
	Street     string `json:"street" bson:"street" binding:"required"`
	City       string `json:"city" bson:"city" binding:"required"`
	PostalCode string `json:"postal_code" bson:"postal_code" binding:"required"`
}

type OrderEvent struct {
	Type      string    `json:"type" bson:"type"`
	Message   string    `json:"message" bson:"message"`
	Actor     string    `json:"actor" bson:"actor"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func NewStatusEvent(status OrderStatus, actor string, at time.Time) OrderEvent {
	msg := fmt.Sprintf("Order marked as %s", status)
	if status == StatusBooked {
		msg = "Order booked successfully"
	}
	return OrderEvent{Type: status.EventType(), Message: msg, Actor: actor, CreatedAt: at}
}

type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID          string             `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Pricing         Pricing            `json:"pricing" bson:"pricing"`
	CurrentStatus   OrderStatus        `json:"current_status" bson:"current_status"`
	StatusUpdatedAt time.Time          `json:"status_updated_at" bson:"status_updated_at"`
	Payment         PaymentCorrelation `json:"payment" bson:"payment"`
	DeliveryAddress Address            `json:"delivery_address" bson:"delivery_address"`
	Events          []OrderEvent       `json:"events" bson:"events"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

type VerifyPaymentRequest struct {
	IntentID        string  `json:"intent_id" binding:"required"`
	ConfirmationID  string  `json:"confirmation_id" binding:"required"`
	Signature       string  `json:"signature" binding:"required"`
	DeliveryAddress Address `json:"delivery_address" binding:"required"`
}

// UpdateStatusRequest leaves status unvalidated at binding time so unknown
// values surface as the invalid-status error.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderList struct {
	Orders []Order  `json:"orders"`
	Meta   MetaData `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

func NewMetaData(page, limit int, total int64) MetaData {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return MetaData{
		Page:        page,
		Limit:       limit,
		TotalOrders: total,
		TotalPages:  pages,
		HasMore:     total > int64(page*limit),
	}
}

type PaymentIntentResponse struct {
	IntentID  string  `json:"intent_id"`
	ReceiptID string  `json:"receipt_id"`
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	Pricing   Pricing `json:"pricing"`
}

// CheckoutResult is returned by payment verification. Duplicate is set when
// the confirmation id had already produced an order.
type CheckoutResult struct {
	OrderID   primitive.ObjectID `json:"order_id"`
	Pricing   Pricing            `json:"pricing"`
	Duplicate bool               `json:"duplicate"`
}
