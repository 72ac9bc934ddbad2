package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/events"
	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/payment"
	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	"github.com/Vinayyy19/Furnista/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SignatureVerifier checks the confirmation signature of a payment.
type SignatureVerifier interface {
	Verify(intentID, confirmationID, signature string) bool
}

// CheckoutService turns a verified payment into a booked order.
type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, userID string) (*models.PaymentIntentResponse, error)
	VerifyAndPlaceOrder(ctx context.Context, userID string, req *models.VerifyPaymentRequest) (*models.CheckoutResult, error)
}

var errTotalOutOfRange = apperrors.Validation("Order total is out of range")

type CheckoutOptions struct {
	ShippingFee    int64
	Currency       string
	IdempotencyTTL time.Duration
}

type checkoutServiceImpl struct {
	carts       repository.CartRepo
	products    repository.ProductRepo
	variants    repository.VariantRepo
	inventory   repository.InventoryLedger
	orders      repository.OrderRepo
	idempotency repository.IdempotencyStore
	bridge      payment.Bridge
	verifier    SignatureVerifier
	publisher   events.Publisher
	metrics     MetricsRecorder
	opts        CheckoutOptions
	logger      *zap.Logger
	now         func() time.Time
}

func NewCheckoutService(
	carts repository.CartRepo,
	products repository.ProductRepo,
	variants repository.VariantRepo,
	inventory repository.InventoryLedger,
	orders repository.OrderRepo,
	idempotency repository.IdempotencyStore,
	bridge payment.Bridge,
	verifier SignatureVerifier,
	publisher events.Publisher,
	metrics MetricsRecorder,
	opts CheckoutOptions,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:       carts,
		products:    products,
		variants:    variants,
		inventory:   inventory,
		orders:      orders,
		idempotency: idempotency,
		bridge:      bridge,
		verifier:    verifier,
		publisher:   publisher,
		metrics:     metrics,
		opts:        opts,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreatePaymentIntent prices the current cart at live prices and opens an
// intent for the final amount.
func (s *checkoutServiceImpl) CreatePaymentIntent(ctx context.Context, userID string) (*models.PaymentIntentResponse, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}

	items, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}
	pricing := models.NewPricing(items, s.opts.ShippingFee)

	receiptID := "rcpt_" + uuid.NewString()
	intentID, err := s.bridge.Create(ctx, pricing.FinalAmount, s.opts.Currency, receiptID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create payment intent: %w", err))
	}

	recordCount(ctx, s.metrics, s.logger, awspkg.MetricPaymentIntents)
	s.logger.Info("Payment intent created",
		zap.String("user_id", userID),
		zap.String("intent_id", intentID),
		zap.String("receipt_id", receiptID),
		zap.Int64("amount", pricing.FinalAmount),
	)

	return &models.PaymentIntentResponse{
		IntentID:  intentID,
		ReceiptID: receiptID,
		Amount:    pricing.FinalAmount,
		Currency:  s.opts.Currency,
		Pricing:   pricing,
	}, nil
}

// VerifyAndPlaceOrder books the cart once per confirmation id. Stock is taken
// with one conditional decrement per line, and everything already taken is
// given back if a later line or the order insert fails.
func (s *checkoutServiceImpl) VerifyAndPlaceOrder(ctx context.Context, userID string, req *models.VerifyPaymentRequest) (*models.CheckoutResult, error) {
	if !s.verifier.Verify(req.IntentID, req.ConfirmationID, req.Signature) {
		recordCount(ctx, s.metrics, s.logger, awspkg.MetricPaymentVerifyFailed)
		s.logger.Warn("Payment signature mismatch",
			zap.String("user_id", userID),
			zap.String("intent_id", req.IntentID),
		)
		return nil, apperrors.ErrPaymentVerification
	}

	existing, err := s.findExisting(ctx, req.ConfirmationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return s.duplicate(ctx, userID, existing)
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}

	items, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}

	reserved, err := s.reserve(ctx, items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Items:           items,
		Pricing:         models.NewPricing(items, s.opts.ShippingFee),
		CurrentStatus:   models.StatusBooked,
		StatusUpdatedAt: now,
		Payment: models.PaymentCorrelation{
			IntentID:       req.IntentID,
			ConfirmationID: req.ConfirmationID,
		},
		DeliveryAddress: req.DeliveryAddress,
		Events:          []models.OrderEvent{models.NewStatusEvent(models.StatusBooked, models.ActorSystem, now)},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.release(ctx, reserved)
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race to a concurrent request with the same confirmation id.
			winner, ferr := s.orders.FindByConfirmationID(ctx, req.ConfirmationID)
			if ferr != nil {
				return nil, apperrors.Internal(ferr)
			}
			return s.duplicate(ctx, userID, winner)
		}
		return nil, apperrors.Internal(fmt.Errorf("insert order: %w", err))
	}

	if _, err := s.carts.Update(ctx, userID, removeOrdered(items)); err != nil {
		s.logger.Error("Failed to empty cart after checkout",
			zap.String("user_id", userID),
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err),
		)
	}
	if s.idempotency != nil {
		if err := s.idempotency.Set(ctx, req.ConfirmationID, order.ID.Hex(), s.opts.IdempotencyTTL); err != nil {
			s.logger.Warn("Failed to cache idempotency key", zap.String("confirmation_id", req.ConfirmationID), zap.Error(err))
		}
	}

	publish(ctx, s.publisher, s.logger, models.EventOrderBooked, order.ID.Hex(), models.OrderEventPayload{
		OrderID:     order.ID.Hex(),
		UserID:      userID,
		Status:      order.CurrentStatus,
		FinalAmount: order.Pricing.FinalAmount,
	})
	recordCount(ctx, s.metrics, s.logger, awspkg.MetricOrdersCreated)

	s.logger.Info("Order booked",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID),
		zap.Int64("final_amount", order.Pricing.FinalAmount),
	)

	return &models.CheckoutResult{OrderID: order.ID, Pricing: order.Pricing}, nil
}

// findExisting checks the cache first and falls back to the order ledger,
// which stays authoritative.
func (s *checkoutServiceImpl) findExisting(ctx context.Context, confirmationID string) (*models.Order, error) {
	if s.idempotency != nil {
		orderID, err := s.idempotency.Get(ctx, confirmationID)
		if err != nil {
			s.logger.Warn("Idempotency cache unavailable", zap.Error(err))
		} else if oid, perr := primitive.ObjectIDFromHex(orderID); orderID != "" && perr == nil {
			order, err := s.orders.FindByID(ctx, oid)
			if err == nil {
				return order, nil
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}

	order, err := s.orders.FindByConfirmationID(ctx, confirmationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *checkoutServiceImpl) duplicate(ctx context.Context, userID string, order *models.Order) (*models.CheckoutResult, error) {
	if order.UserID != userID {
		return nil, apperrors.Conflict("Payment confirmation already used")
	}
	recordCount(ctx, s.metrics, s.logger, awspkg.MetricOrdersDuplicate)
	s.logger.Info("Duplicate payment confirmation",
		zap.String("order_id", order.ID.Hex()),
		zap.String("confirmation_id", order.Payment.ConfirmationID),
	)
	return &models.CheckoutResult{OrderID: order.ID, Pricing: order.Pricing, Duplicate: true}, nil
}

// snapshot resolves every cart line against the catalog at current prices.
func (s *checkoutServiceImpl) snapshot(ctx context.Context, cart *models.Cart) ([]models.OrderItem, error) {
	productIDs := make([]primitive.ObjectID, 0, len(cart.Items))
	variantIDs := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, it := range cart.Items {
		productIDs = append(productIDs, it.ProductID)
		variantIDs = append(variantIDs, it.VariantID)
	}

	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	variants, err := s.variants.FindByIDs(ctx, variantIDs)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	total := s.opts.ShippingFee
	for _, it := range cart.Items {
		if it.Quantity < 1 || it.Quantity > models.MaxLineQuantity {
			return nil, apperrors.ErrInvalidQuantity
		}
		product, ok := products[it.ProductID]
		if !ok {
			return nil, apperrors.NotFound("Product not found")
		}
		variant, ok := variants[it.VariantID]
		if !ok || variant.ProductID != product.ID {
			return nil, apperrors.NotFound("Variant not found")
		}

		if variant.SellingPrice < 0 || variant.SellingPrice > math.MaxInt64/models.MaxLineQuantity {
			return nil, errTotalOutOfRange
		}
		subtotal := variant.SellingPrice * int64(it.Quantity)
		if total > math.MaxInt64-subtotal {
			return nil, errTotalOutOfRange
		}
		total += subtotal

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			Color:       variant.Color,
			Size:        variant.Size,
			UnitPrice:   variant.SellingPrice,
			MarketPrice: variant.MarketPrice,
			Quantity:    it.Quantity,
			Subtotal:    subtotal,
		})
	}
	return items, nil
}

// reserve decrements stock line by line. On the first failure everything
// taken so far is released.
func (s *checkoutServiceImpl) reserve(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	reserved := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		err := s.inventory.Decrement(ctx, it.VariantID, it.Quantity)
		if err == nil {
			reserved = append(reserved, it)
			continue
		}

		s.release(ctx, reserved)
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			recordCount(ctx, s.metrics, s.logger, awspkg.MetricInsufficientStock)
			return nil, apperrors.InsufficientStock(it.ProductName)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("Variant not found")
		default:
			return nil, apperrors.Internal(fmt.Errorf("decrement stock: %w", err))
		}
	}
	return reserved, nil
}

func (s *checkoutServiceImpl) release(ctx context.Context, items []models.OrderItem) {
	ctx = context.WithoutCancel(ctx)
	for _, it := range items {
		if err := s.inventory.Increment(ctx, it.VariantID, it.Quantity); err != nil {
			s.logger.Error("Failed to release reserved stock",
				zap.String("variant_id", it.VariantID.Hex()),
				zap.Int("qty", it.Quantity),
				zap.Error(err),
			)
		}
	}
}

// removeOrdered takes the ordered quantities out of the cart. Lines added
// after the snapshot was taken stay in place.
func removeOrdered(items []models.OrderItem) func(*models.Cart) error {
	return func(cart *models.Cart) error {
		for _, it := range items {
			i := cart.Find(it.ProductID, it.VariantID)
			if i < 0 {
				continue
			}
			if cart.Items[i].Quantity > it.Quantity {
				cart.Items[i].Quantity -= it.Quantity
				continue
			}
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
		return nil
	}
}
