package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CartService defines the cart operations of a signed-in user.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, productID, variantID primitive.ObjectID, qty int) (*models.Cart, error)
	UpdateItem(ctx context.Context, userID string, productID, variantID primitive.ObjectID, qty int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID, variantID primitive.ObjectID) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) (*models.Cart, error)
}

type cartServiceImpl struct {
	carts    repository.CartRepo
	products repository.ProductRepo
	variants repository.VariantRepo
	logger   *zap.Logger
}

func NewCartService(
	carts repository.CartRepo,
	products repository.ProductRepo,
	variants repository.VariantRepo,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		carts:    carts,
		products: products,
		variants: variants,
		logger:   logger,
	}
}

var (
	errLineNotFound = apperrors.NotFound("Item not found in cart")
	errLineTooLarge = apperrors.Validation(fmt.Sprintf("Quantity per item cannot exceed %d", models.MaxLineQuantity))
)

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

// AddItem adds qty of the pair. Stock is not checked here; it is reserved at
// checkout.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, productID, variantID primitive.ObjectID, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, apperrors.Validation("Quantity must be at least 1")
	}
	if qty > models.MaxLineQuantity {
		return nil, errLineTooLarge
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, lookupError(err, "Product not found")
	}
	variant, err := s.variants.FindByID(ctx, variantID)
	if err != nil {
		return nil, lookupError(err, "Variant not found")
	}
	if variant.ProductID != productID {
		return nil, apperrors.NotFound("Variant not found")
	}

	cart, err := s.carts.Update(ctx, userID, func(cart *models.Cart) error {
		if i := cart.Find(productID, variantID); i >= 0 {
			if cart.Items[i].Quantity > models.MaxLineQuantity-qty {
				return errLineTooLarge
			}
			cart.Items[i].Quantity += qty
			return nil
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:      productID,
			VariantID:      variantID,
			Quantity:       qty,
			PriceAtAddTime: variant.SellingPrice,
		})
		return nil
	})
	if err != nil {
		return nil, apperrors.From(err)
	}

	s.logger.Debug("Cart item added",
		zap.String("user_id", userID),
		zap.String("variant_id", variantID.Hex()),
		zap.Int("qty", qty),
	)
	return cart, nil
}

func (s *cartServiceImpl) UpdateItem(ctx context.Context, userID string, productID, variantID primitive.ObjectID, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}
	if qty > models.MaxLineQuantity {
		return nil, errLineTooLarge
	}

	cart, err := s.carts.Update(ctx, userID, func(cart *models.Cart) error {
		i := cart.Find(productID, variantID)
		if i < 0 {
			return errLineNotFound
		}
		cart.Items[i].Quantity = qty
		return nil
	})
	if err != nil {
		return nil, apperrors.From(err)
	}
	return cart, nil
}

// RemoveItem is a no-op when the pair is not in the cart.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID string, productID, variantID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.Update(ctx, userID, func(cart *models.Cart) error {
		if i := cart.Find(productID, variantID); i >= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.Update(ctx, userID, emptyCart)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

func emptyCart(cart *models.Cart) error {
	cart.Items = []models.CartItem{}
	return nil
}

func lookupError(err error, notFound string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(notFound)
	}
	return apperrors.Internal(err)
}
