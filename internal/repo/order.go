package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
)

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Details").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Details").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetPayment(ctx context.Context, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateDeliveryStatus advances an order along the delivery state machine.
// The order row is locked so two concurrent transitions cannot both apply.
func (r *GormRepo) UpdateDeliveryStatus(ctx context.Context, orderID uint, to string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&order, orderID).Error; err != nil {
			return err
		}
		if !models.CanTransition(order.DeliveryStatus, to) {
			return ErrStatusTransition
		}
		if err := tx.Model(&order).Update("delivery_status", to).Error; err != nil {
			return err
		}
		order.DeliveryStatus = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
