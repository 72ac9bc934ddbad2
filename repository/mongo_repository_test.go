package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoInventory_Decrement(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("enough stock", func(mt *mtest.T) {
		inv := NewMongoInventory(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		id := primitive.NewObjectID()
		assert.NoError(t, inv.Decrement(context.Background(), id, 2))

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "update", started.CommandName)
		filter := started.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("q").Document()
		assert.Equal(t, id, filter.Lookup("_id").ObjectID())
		assert.Equal(t, int64(2), filter.Lookup("stock_qty", "$gte").AsInt64())
	})

	mt.Run("short stock", func(mt *mtest.T) {
		inv := NewMongoInventory(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "test.variants", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		err := inv.Decrement(context.Background(), primitive.NewObjectID(), 9)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	mt.Run("unknown variant", func(mt *mtest.T) {
		inv := NewMongoInventory(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "test.variants", mtest.FirstBatch),
		)

		err := inv.Decrement(context.Background(), primitive.NewObjectID(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderRepository_CreateDuplicate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate confirmation id", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &models.Order{
			Payment: models.PaymentCorrelation{IntentID: "pi_1", ConfirmationID: "pay_1"},
		})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated order", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		id := primitive.NewObjectID()
		at := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "current_status", Value: "SHIPPED"},
				{Key: "status_updated_at", Value: at},
			}},
		})

		event := models.NewStatusEvent(models.StatusShipped, models.ActorAdmin, at)
		order, err := repo.UpdateStatus(context.Background(), id, nil, models.StatusShipped, event)
		require.NoError(t, err)
		assert.Equal(t, models.StatusShipped, order.CurrentStatus)
		assert.Equal(t, id, order.ID)
	})

	mt.Run("missing order", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.UpdateStatus(context.Background(), primitive.NewObjectID(), nil, models.StatusPacked, models.OrderEvent{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderRepository_DeleteMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("nothing deleted", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

