package services

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/events"
	"github.com/Vinayyy19/Furnista/models"
	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	"github.com/Vinayyy19/Furnista/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService interface {
	GetOrder(ctx context.Context, userID string, orderID primitive.ObjectID) (*models.Order, error)
	ListMine(ctx context.Context, userID string, page, limit int) (*models.OrderList, error)
	ListAll(ctx context.Context, page, limit int) (*models.OrderList, error)
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, orderID primitive.ObjectID) error
}

type orderServiceImpl struct {
	orders      repository.OrderRepo
	publisher   events.Publisher
	metrics     MetricsRecorder
	forwardOnly bool
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates an OrderService. With forwardOnly set, status
// updates must move strictly forward through the lifecycle.
func NewOrderService(
	orders repository.OrderRepo,
	publisher events.Publisher,
	metrics MetricsRecorder,
	forwardOnly bool,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orders:      orders,
		publisher:   publisher,
		metrics:     metrics,
		forwardOnly: forwardOnly,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var errOrderNotFound = apperrors.NotFound("Order not found")

// GetOrder only returns orders owned by userID.
func (s *orderServiceImpl) GetOrder(ctx context.Context, userID string, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if order.UserID != userID {
		return nil, errOrderNotFound
	}
	return order, nil
}

func (s *orderServiceImpl) ListMine(ctx context.Context, userID string, page, limit int) (*models.OrderList, error) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.OrderList{Orders: orders, Meta: models.NewMetaData(page, limit, total)}, nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context, page, limit int) (*models.OrderList, error) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.OrderList{Orders: orders, Meta: models.NewMetaData(page, limit, total)}, nil
}

// UpdateStatus sets the status and appends the matching event in a single
// write. An unknown status never reaches the store.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, apperrors.InvalidStatus(status)
	}

	var from *models.OrderStatus
	if s.forwardOnly {
		current, err := s.orders.FindByID(ctx, orderID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errOrderNotFound
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !models.CanTransition(current.CurrentStatus, next) {
			return nil, apperrors.New(apperrors.KindInvalidStatus, apperrors.ErrInvalidStatus.Code,
				"Cannot move order from "+string(current.CurrentStatus)+" to "+string(next), nil)
		}
		from = &current.CurrentStatus
	}

	event := models.NewStatusEvent(next, models.ActorAdmin, s.now())
	order, err := s.orders.UpdateStatus(ctx, orderID, from, next, event)
	if errors.Is(err, repository.ErrNotFound) {
		if from != nil {
			return nil, apperrors.Conflict("Order status changed, reload and retry")
		}
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	publish(ctx, s.publisher, s.logger, models.EventOrderStatusChanged, order.ID.Hex(), models.OrderEventPayload{
		OrderID: order.ID.Hex(),
		UserID:  order.UserID,
		Status:  order.CurrentStatus,
		Actor:   models.ActorAdmin,
	})
	recordCount(ctx, s.metrics, s.logger, awspkg.MetricOrderStatusChanged)
	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID.Hex()),
		zap.String("status", string(order.CurrentStatus)),
	)
	return order, nil
}

// Delete is a hard delete.
func (s *orderServiceImpl) Delete(ctx context.Context, orderID primitive.ObjectID) error {
	err := s.orders.Delete(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return errOrderNotFound
	}
	if err != nil {
		return apperrors.Internal(err)
	}

	publish(ctx, s.publisher, s.logger, models.EventOrderDeleted, orderID.Hex(), models.OrderEventPayload{
		OrderID: orderID.Hex(),
		Actor:   models.ActorAdmin,
	})
	s.logger.Info("Order deleted", zap.String("order_id", orderID.Hex()))
	return nil
}
