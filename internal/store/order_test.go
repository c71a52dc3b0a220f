package store

import (
	"context"
	"testing"
	"time"

	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCustomer(t *testing.T, db *MYSQLStore) int {
	id, err := db.Account().AddAccount(context.Background(), &entity.AccountInsert{
		Email:     "customer@test.com",
		FirstName: "Test",
		LastName:  "Customer",
		Role:      entity.RoleCustomer,
	}, "hash")
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, db *MYSQLStore, name string, price int64, stock int) int {
	id, err := db.Products().AddProduct(context.Background(), &entity.ProductInsert{
		ProductBody: entity.ProductBody{
			Name:   name,
			Price:  decimal.NewFromInt(price),
			Stock:  stock,
			Gender: entity.Unisex,
		},
	})
	require.NoError(t, err)
	return id
}

func TestOrderLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customerId := seedCustomer(t, db)
	productId := seedProduct(t, db, "Noir Essence 50ml", 80, 10)

	var orderUUID string

	t.Run("CreateOrder", func(t *testing.T) {
		order, err := db.Order().CreateOrder(ctx, &entity.OrderNew{
			Items: []entity.OrderItemInsert{
				{ProductId: productId, Quantity: 2},
			},
			PaymentMethod: entity.CashOnDelivery,
			Address:       "12 Rosewater Lane",
		}, customerId)
		require.NoError(t, err)

		assert.Equal(t, entity.Pending, order.Order.Status)
		assert.True(t, order.Order.TotalPrice.Equal(decimal.NewFromInt(160)))
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)
		orderUUID = order.Order.UUID

		prd, err := db.Products().GetProductById(ctx, productId)
		require.NoError(t, err)
		assert.Equal(t, 8, prd.Stock)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		_, err := db.Order().CreateOrder(ctx, &entity.OrderNew{
			Items: []entity.OrderItemInsert{
				{ProductId: productId, Quantity: 100},
			},
			PaymentMethod: entity.CashOnDelivery,
			Address:       "12 Rosewater Lane",
		}, customerId)
		assert.ErrorIs(t, err, gerr.ErrInsufficientStock)
	})

	t.Run("ForwardTransitions", func(t *testing.T) {
		require.NoError(t, db.Order().SetOrderStatus(ctx, orderUUID, entity.Processing))
		require.NoError(t, db.Order().SetOrderStatus(ctx, orderUUID, entity.Shipped))

		// backwards is rejected
		err := db.Order().SetOrderStatus(ctx, orderUUID, entity.Pending)
		assert.ErrorIs(t, err, gerr.ErrBadStatusChange)
	})

	t.Run("AssignAgentAndDeliver", func(t *testing.T) {
		agentId, err := db.Account().AddAccount(ctx, &entity.AccountInsert{
			Email:         "agent@test.com",
			FirstName:     "Agent",
			Role:          entity.RoleAgent,
			CommissionPct: decimal.NewNullDecimal(decimal.NewFromInt(5)),
		}, "hash")
		require.NoError(t, err)

		require.NoError(t, db.Order().AssignAgent(ctx, orderUUID, agentId))

		orders, err := db.Order().GetAgentOrders(ctx, agentId, entity.OutForDelivery)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		require.NoError(t, db.Order().DeliverOrder(ctx, orderUUID, decimal.NewFromInt(8)))

		order, err := db.Order().GetOrderByUUID(ctx, orderUUID)
		require.NoError(t, err)
		assert.Equal(t, entity.Delivered, order.Order.Status)
		assert.True(t, order.Order.Commission.Equal(decimal.NewFromInt(8)))

		// delivered is terminal
		err = db.Order().SetOrderStatus(ctx, orderUUID, entity.Cancelled)
		assert.ErrorIs(t, err, gerr.ErrBadStatusChange)
	})

	t.Run("CancelRestoresStock", func(t *testing.T) {
		order, err := db.Order().CreateOrder(ctx, &entity.OrderNew{
			Items: []entity.OrderItemInsert{
				{ProductId: productId, Quantity: 3},
			},
			PaymentMethod: entity.CashOnDelivery,
			Address:       "12 Rosewater Lane",
		}, customerId)
		require.NoError(t, err)

		prd, err := db.Products().GetProductById(ctx, productId)
		require.NoError(t, err)
		assert.Equal(t, 5, prd.Stock)

		require.NoError(t, db.Order().CancelOrder(ctx, order.Order.UUID))

		prd, err = db.Products().GetProductById(ctx, productId)
		require.NoError(t, err)
		assert.Equal(t, 8, prd.Stock)

		got, err := db.Order().GetOrderByUUID(ctx, order.Order.UUID)
		require.NoError(t, err)
		assert.Equal(t, entity.Cancelled, got.Order.Status)
	})

	t.Run("GetOrdersWithItemsSince", func(t *testing.T) {
		orders, err := db.Order().GetOrdersWithItemsSince(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, orders, 2)
		for _, o := range orders {
			assert.NotEmpty(t, o.Items)
			assert.Equal(t, "Noir Essence 50ml", o.Items[0].ProductName)
		}
	})
}

func TestDeliveryOTPStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customerId := seedCustomer(t, db)
	productId := seedProduct(t, db, "Amber Oud 100ml", 120, 5)

	order, err := db.Order().CreateOrder(ctx, &entity.OrderNew{
		Items:         []entity.OrderItemInsert{{ProductId: productId, Quantity: 1}},
		PaymentMethod: entity.CashOnDelivery,
		Address:       "5 Vetiver Road",
	}, customerId)
	require.NoError(t, err)

	orderId := order.Order.Id
	expiresAt := time.Now().Add(30 * time.Minute)

	require.NoError(t, db.Order().UpsertDeliveryOTP(ctx, orderId, "0042", expiresAt))

	otp, err := db.Order().GetDeliveryOTP(ctx, orderId)
	require.NoError(t, err)
	assert.Equal(t, "0042", otp.Code)
	assert.Equal(t, 0, otp.Attempts)

	require.NoError(t, db.Order().IncrementOTPAttempts(ctx, orderId))
	otp, err = db.Order().GetDeliveryOTP(ctx, orderId)
	require.NoError(t, err)
	assert.Equal(t, 1, otp.Attempts)

	// regenerating resets the attempt counter
	require.NoError(t, db.Order().UpsertDeliveryOTP(ctx, orderId, "7777", expiresAt))
	otp, err = db.Order().GetDeliveryOTP(ctx, orderId)
	require.NoError(t, err)
	assert.Equal(t, "7777", otp.Code)
	assert.Equal(t, 0, otp.Attempts)

	require.NoError(t, db.Order().DeleteDeliveryOTP(ctx, orderId))
	_, err = db.Order().GetDeliveryOTP(ctx, orderId)
	assert.ErrorIs(t, err, gerr.ErrOTPNotFound)
}

func TestStatusChangeToCancelledRestoresStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customerId := seedCustomer(t, db)
	productId := seedProduct(t, db, "Santal Brume 50ml", 95, 10)

	order, err := db.Order().CreateOrder(ctx, &entity.OrderNew{
		Items:         []entity.OrderItemInsert{{ProductId: productId, Quantity: 4}},
		PaymentMethod: entity.CashOnDelivery,
		Address:       "3 Cedarwood Court",
	}, customerId)
	require.NoError(t, err)

	prd, err := db.Products().GetProductById(ctx, productId)
	require.NoError(t, err)
	assert.Equal(t, 6, prd.Stock)

	require.NoError(t, db.Order().UpsertDeliveryOTP(ctx, order.Order.Id, "1234", time.Now().Add(30*time.Minute)))

	// cancelling through the generic transition must behave exactly like
	// CancelOrder: stock back on the shelf, delivery code gone
	require.NoError(t, db.Order().SetOrderStatus(ctx, order.Order.UUID, entity.Cancelled))

	got, err := db.Order().GetOrderByUUID(ctx, order.Order.UUID)
	require.NoError(t, err)
	assert.Equal(t, entity.Cancelled, got.Order.Status)

	prd, err = db.Products().GetProductById(ctx, productId)
	require.NoError(t, err)
	assert.Equal(t, 10, prd.Stock)

	_, err = db.Order().GetDeliveryOTP(ctx, order.Order.Id)
	assert.ErrorIs(t, err, gerr.ErrOTPNotFound)
}
