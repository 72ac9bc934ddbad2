package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewPricing(t *testing.T) {
	items := []OrderItem{{UnitPrice: 100, Quantity: 2, Subtotal: 200}}

	p := NewPricing(items, 49)

	assert.Equal(t, Pricing{ItemsTotal: 200, ShippingFee: 49, FinalAmount: 249}, p)
}

func TestNewPricing_EmptyHasNoShipping(t *testing.T) {
	p := NewPricing(nil, 49)
	assert.Equal(t, Pricing{}, p)
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{StatusBooked, StatusConfirmed, StatusPacked, StatusShipped, StatusDelivered} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("CANCELLED").Valid())
	assert.False(t, OrderStatus("booked").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusBooked, StatusConfirmed))
	assert.True(t, CanTransition(StatusBooked, StatusDelivered))
	assert.False(t, CanTransition(StatusShipped, StatusPacked))
	assert.False(t, CanTransition(StatusPacked, StatusPacked))
	assert.False(t, CanTransition(StatusBooked, "LOST"))
}

func TestNewStatusEvent(t *testing.T) {
	e := NewStatusEvent(StatusShipped, ActorAdmin, primitive.NewObjectID().Timestamp())
	assert.Equal(t, "ORDER_SHIPPED", e.Type)
	assert.Equal(t, "Order marked as SHIPPED", e.Message)
	assert.Equal(t, ActorAdmin, e.Actor)
}

func TestCart_Find(t *testing.T) {
	p, v := primitive.NewObjectID(), primitive.NewObjectID()
	c := NewCart("u1")
	c.Items = append(c.Items, CartItem{ProductID: p, VariantID: v, Quantity: 1})

	assert.Equal(t, 0, c.Find(p, v))
	assert.Equal(t, -1, c.Find(p, primitive.NewObjectID()))
}

func TestNewMetaData(t *testing.T) {
	m := NewMetaData(1, 10, 25)
	assert.Equal(t, int64(3), m.TotalPages)
	assert.True(t, m.HasMore)

	m = NewMetaData(3, 10, 25)
	assert.False(t, m.HasMore)
}
