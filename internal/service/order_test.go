package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efoodhub/backend/internal/models"
)

func placeTestOrder(t *testing.T, svc *CheckoutService, userID uint) *models.Order {
	t.Helper()
	ctx := context.Background()

	_, food := seedCatalog(t, svc.Repo.DB)
	addr := seedAddress(t, svc.Repo.DB, userID)
	subID := fillSubCart(t, svc.Repo, userID, food, 2)

	order, err := svc.PlaceOrder(ctx, userID, PlaceOrderInput{
		SubCartID:     subID,
		AddressID:     addr.ID,
		Total:         100000,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_ListMyOrders(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r, Gateway: &stubGateway{}}
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	order := placeTestOrder(t, checkout, 1)

	orders, err := svc.ListMyOrders(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	orders, err = svc.ListMyOrders(ctx, 2, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_UpdateDeliveryStatus_Roles(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r, Gateway: &stubGateway{}}
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	order := placeTestOrder(t, checkout, 1)

	// customers cannot advance, only cancel
	_, err := svc.UpdateDeliveryStatus(ctx, 1, "customer", order.ID, models.OrderStatusAccepted)
	require.ErrorIs(t, err, ErrUnauthorized)

	// and only their own orders
	_, err = svc.UpdateDeliveryStatus(ctx, 2, "customer", order.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrUnauthorized)

	got, err := svc.UpdateDeliveryStatus(ctx, 99, "restaurant", order.ID, models.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, got.DeliveryStatus)

	got, err = svc.UpdateDeliveryStatus(ctx, 1, "customer", order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.DeliveryStatus)
}

func TestOrderService_UpdateDeliveryStatus_UnknownStatus(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	_, err := svc.UpdateDeliveryStatus(context.Background(), 1, "admin", 1, "teleported")
	require.ErrorIs(t, err, ErrValidation)
}
