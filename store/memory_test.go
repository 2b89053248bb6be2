package store

import (
	"context"
	"testing"

	"github.com/dhimanroyit/ssl-react-native-problem/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pendingOrder(userID primitive.ObjectID, tranID string, total float64) *models.Order {
	return &models.Order{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		GrandTotal: total,
		Payment:    models.Payment{TransactionID: tranID},
		OrderStatus: models.OrderStatus{
			Type:    models.OrderPending,
			Message: "waiting for payment",
		},
	}
}

func TestMemoryOrderStoreInsertRejectsDuplicateTransaction(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	userID := primitive.NewObjectID()

	require.NoError(t, orders.Insert(ctx, pendingOrder(userID, "TRAN1", 1000)))
	assert.Error(t, orders.Insert(ctx, pendingOrder(userID, "TRAN1", 500)))
}

func TestMemoryOrderStoreResolveOnlyWhilePending(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	userID := primitive.NewObjectID()
	require.NoError(t, orders.Insert(ctx, pendingOrder(userID, "TRAN1", 1000)))

	success := Resolution{
		OrderStatus:   models.OrderStatus{Type: models.OrderSuccess, Message: "successfully done"},
		PaymentStatus: models.PaymentPaid,
		Paid:          models.PaymentAmount{Amount: 1000, Method: models.MethodSSLCommerce},
		Payable:       models.PaymentAmount{Amount: 0, Method: models.MethodCashOnDelivery},
	}

	applied, err := orders.Resolve(ctx, "TRAN1", success)
	require.NoError(t, err)
	assert.True(t, applied)

	// A second resolution for the same transaction is a no-op.
	fail := Resolution{
		OrderStatus:   models.OrderStatus{Type: models.OrderFail, Message: "failed by ssl"},
		PaymentStatus: models.PaymentUnpaid,
	}
	applied, err = orders.Resolve(ctx, "TRAN1", fail)
	require.NoError(t, err)
	assert.False(t, applied)

	order, err := orders.FindByTransactionID(ctx, "TRAN1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderSuccess, order.OrderStatus.Type)
	assert.Equal(t, models.PaymentPaid, order.Payment.Status)
}

func TestMemoryOrderStoreResolveUnknownTransaction(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()

	applied, err := orders.Resolve(ctx, "NOPE", Resolution{})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestMemoryOrderStoreFindByIDScopedToUser(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	order := pendingOrder(owner, "TRAN1", 1000)
	require.NoError(t, orders.Insert(ctx, order))

	found, err := orders.FindByID(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = orders.FindByID(ctx, order.ID, other)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryOrderStoreListByUser(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrderStore()
	userID := primitive.NewObjectID()

	require.NoError(t, orders.Insert(ctx, pendingOrder(userID, "TRAN1", 100)))
	require.NoError(t, orders.Insert(ctx, pendingOrder(userID, "TRAN2", 200)))
	require.NoError(t, orders.Insert(ctx, pendingOrder(primitive.NewObjectID(), "TRAN3", 300)))

	list, total, err := orders.ListByUser(ctx, userID, ListOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	// Status filter narrows the list.
	success := Resolution{
		OrderStatus:   models.OrderStatus{Type: models.OrderSuccess, Message: "successfully done"},
		PaymentStatus: models.PaymentPaid,
	}
	_, err = orders.Resolve(ctx, "TRAN1", success)
	require.NoError(t, err)

	list, total, err = orders.ListByUser(ctx, userID, ListOptions{Page: 1, Limit: 10, Status: models.OrderSuccess})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "TRAN1", list[0].Payment.TransactionID)
}

func TestMemoryProductStore(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryProductStore()

	product := models.Product{ID: primitive.NewObjectID(), Name: "Leather Wallet", Price: 500}
	products.Add(product)

	found, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leather Wallet", found.Name)

	_, err = products.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProductNotFound)

	list, total, err := products.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}
