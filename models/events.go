package models

import "time"

const (
	EventOrderBooked        = "order.booked"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
	EventContactReceived    = "contact.received"
)

// Event is the envelope published to the configured message bus.
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type OrderEventPayload struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id,omitempty"`
	Status      OrderStatus `json:"status,omitempty"`
	FinalAmount int64       `json:"final_amount,omitempty"`
	Actor       string      `json:"actor,omitempty"`
}

type ContactEventPayload struct {
	MessageID string `json:"message_id"`
	Type      string `json:"type"`
	Email     string `json:"email"`
}
