package services_test

import (
	"context"
	"math"
	"testing"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestCartService(catalog *fakeCatalog, carts *fakeCarts) services.CartService {
	logger, _ := zap.NewDevelopment()
	return services.NewCartService(carts, fakeProducts{catalog}, fakeVariants{catalog}, logger)
}

func TestCartService_AddItem(t *testing.T) {
	catalog := newFakeCatalog()
	p, v := catalog.addVariant("Teak Sofa", 100)
	svc := newTestCartService(catalog, newFakeCarts())
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", p.ID, v.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(100), cart.Items[0].PriceAtAddTime)

	// same pair again accumulates, no second line
	cart, err = svc.AddItem(ctx, "u1", p.ID, v.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItem_NoStockBound(t *testing.T) {
	catalog := newFakeCatalog()
	p, v := catalog.addVariant("Teak Sofa", 100)
	v.StockQty = 1
	svc := newTestCartService(catalog, newFakeCarts())

	cart, err := svc.AddItem(context.Background(), "u1", p.ID, v.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, cart.Items[0].Quantity)
}

func TestCartService_AddItem_Errors(t *testing.T) {
	catalog := newFakeCatalog()
	p, v := catalog.addVariant("Teak Sofa", 100)
	other, _ := catalog.addVariant("Cane Chair", 40)
	svc := newTestCartService(catalog, newFakeCarts())
	ctx := context.Background()

	tests := []struct {
		name      string
		productID primitive.ObjectID
		variantID primitive.ObjectID
		qty       int
		want      error
	}{
		{"unknown product", primitive.NewObjectID(), v.ID, 1, apperrors.ErrNotFound},
		{"unknown variant", p.ID, primitive.NewObjectID(), 1, apperrors.ErrNotFound},
		{"variant of another product", other.ID, v.ID, 1, apperrors.ErrNotFound},
		{"zero quantity", p.ID, v.ID, 0, apperrors.ErrValidation},
		{"above line cap", p.ID, v.ID, models.MaxLineQuantity + 1, apperrors.ErrValidation},
		{"max int", p.ID, v.ID, math.MaxInt, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, "u1", tt.productID, tt.variantID, tt.qty)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCartService_AddItem_LineCapDoesNotOverflow(t *testing.T) {
	catalog := newFakeCatalog()
	p, v := catalog.addVariant("Teak Sofa", 100)
	svc := newTestCartService(catalog, newFakeCarts())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", p.ID, v.ID, models.MaxLineQuantity)
	require.NoError(t, err)

	for _, qty := range []int{1, 2, math.MaxInt} {
		_, err = svc.AddItem(ctx, "u1", p.ID, v.ID, qty)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, models.MaxLineQuantity, cart.Items[0].Quantity)
}

func TestCartService_UpdateItem(t *testing.T) {
	catalog := newFakeCatalog()
	p, v := catalog.addVariant("Teak Sofa", 100)
	svc := newTestCartService(catalog, newFakeCarts())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", p.ID, v.ID, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateItem(ctx, "u1", p.ID, v.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, "u1", p.ID, v.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)

	_, err = svc.UpdateItem(ctx, "u1", p.ID, v.ID, math.MaxInt)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateItem(ctx, "u1", p.ID, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	cart, _ = svc.GetCart(ctx, "u1")
	assert.Equal(t, 7, cart.Items[0].Quantity, "failed updates leave the cart alone")
}

func TestCartService_RemoveItem(t *testing.T) {
	catalog := newFakeCatalog()
	p1, v1 := catalog.addVariant("Teak Sofa", 100)
	p2, v2 := catalog.addVariant("Cane Chair", 40)
	svc := newTestCartService(catalog, newFakeCarts())
	ctx := context.Background()

	_, _ = svc.AddItem(ctx, "u1", p1.ID, v1.ID, 1)
	_, _ = svc.AddItem(ctx, "u1", p2.ID, v2.ID, 1)

	cart, err := svc.RemoveItem(ctx, "u1", p1.ID, v1.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, v2.ID, cart.Items[0].VariantID)

	// absent pair is a no-op
	cart, err = svc.RemoveItem(ctx, "u1", p1.ID, v1.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_GetAndClear(t *testing.T) {
	catalog := newFakeCatalog()
	p, v := catalog.addVariant("Teak Sofa", 100)
	carts := newFakeCarts()
	svc := newTestCartService(catalog, carts)
	ctx := context.Background()

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, _ = svc.AddItem(ctx, "u1", p.ID, v.ID, 1)
	cart, err = svc.ClearCart(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, carts.exists("u1"))
}
