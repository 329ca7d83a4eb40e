package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efoodhub/backend/internal/models"
)

func placeTestOrder(t *testing.T, r *GormRepo, userID uint) *models.Order {
	t.Helper()
	ctx := context.Background()

	rest := seedRestaurant(t, r.DB, "pho_corner")
	food := seedFood(t, r.DB, rest.ID, "pho_bo", 50000)
	addr := seedAddress(t, r.DB, userID)

	cart, err := r.AddItem(ctx, userID, food, 2, "")
	require.NoError(t, err)

	order, err := r.PlaceOrder(ctx, PlaceOrderParams{
		UserID:        userID,
		SubCartID:     cart.SubCarts[0].ID,
		AddressID:     addr.ID,
		Total:         100000,
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder_EmptySubCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	addr := seedAddress(t, r.DB, 1)
	cart := models.Cart{UserID: 1, ItemsNumber: 1}
	require.NoError(t, r.DB.Create(&cart).Error)
	sub := models.SubCart{CartID: cart.ID, RestaurantID: 1}
	require.NoError(t, r.DB.Create(&sub).Error)

	_, err := r.PlaceOrder(ctx, PlaceOrderParams{
		UserID:        1,
		SubCartID:     sub.ID,
		AddressID:     addr.ID,
		Total:         1,
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.ErrorIs(t, err, ErrEmptySubCart)
}

func TestListOrders_NewestFirst(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := placeTestOrder(t, r, 1)
	require.NoError(t, r.DB.Model(&models.Order{}).Where("id = ?", first.ID).
		Update("order_date", time.Now().UTC().Add(-time.Hour)).Error)
	second := placeTestOrder(t, r, 1)
	placeTestOrder(t, r, 2) // someone else's order

	orders, err := r.ListOrders(ctx, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	require.Len(t, orders[0].Details, 1)
}

func TestUpdateDeliveryStatus_WalksTheChain(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	order := placeTestOrder(t, r, 1)

	for _, status := range []string{
		models.OrderStatusAccepted,
		models.OrderStatusDelivering,
		models.OrderStatusDelivered,
	} {
		got, err := r.UpdateDeliveryStatus(ctx, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.DeliveryStatus)
	}
}

func TestUpdateDeliveryStatus_RejectsSkipsAndTerminal(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	order := placeTestOrder(t, r, 1)

	// pending cannot jump straight to delivered
	_, err := r.UpdateDeliveryStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrStatusTransition)

	_, err = r.UpdateDeliveryStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	// cancelled is terminal
	_, err = r.UpdateDeliveryStatus(ctx, order.ID, models.OrderStatusAccepted)
	require.ErrorIs(t, err, ErrStatusTransition)
}
