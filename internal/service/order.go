package service

import (
	"context"
	"fmt"

	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
	"github.com/efoodhub/backend/internal/util"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID uint, page, size int) ([]models.Order, error) {
	offset, limit := util.Calculate(page, size)
	orders, err := s.Repo.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return orders, nil
}

// UpdateDeliveryStatus moves an order along the delivery state machine.
// Customers may only cancel their own non-terminal orders; restaurant and
// admin roles may apply any legal transition.
func (s *OrderService) UpdateDeliveryStatus(ctx context.Context, userID uint, role string, orderID uint, to string) (*models.Order, error) {
	switch to {
	case models.OrderStatusAccepted, models.OrderStatusDelivering,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown delivery status %q", ErrValidation, to)
	}

	if role != "restaurant" && role != "admin" {
		if to != models.OrderStatusCancelled {
			return nil, fmt.Errorf("%w: customers may only cancel", ErrUnauthorized)
		}
		order, err := s.Repo.GetOrder(ctx, orderID)
		if err != nil {
			return nil, mapStoreErr(err)
		}
		if order.UserID != userID {
			return nil, fmt.Errorf("%w: not your order", ErrUnauthorized)
		}
	}

	order, err := s.Repo.UpdateDeliveryStatus(ctx, orderID, to)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return order, nil
}
