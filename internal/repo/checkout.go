package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
)

type PlaceOrderParams struct {
	UserID        uint
	SubCartID     uint
	AddressID     uint
	ShippingFee   int64
	Total         int64
	PaymentMethod string
	PaymentRef    string
	PaymentOK     bool
}

// PlaceOrder converts one sub-cart into an order, a payment and its detail
// lines, then deletes the sub-cart, all inside one transaction. Locks are
// taken cart first, then sub-cart, the same order every cart mutation uses,
// so checkout and a concurrent add can never deadlock each other. The
// sub-cart stays locked for the whole conversion so no mutation can slip
// between snapshotting the lines and deleting them. Any failure rolls
// everything back and leaves the sub-cart intact for retry.
func (r *GormRepo) PlaceOrder(ctx context.Context, p PlaceOrderParams) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// unlocked read only locates the parent cart
		var sub models.SubCart
		if err := tx.First(&sub, p.SubCartID).Error; err != nil {
			return err
		}
		var cart models.Cart
		if err := forUpdate(tx).First(&cart, sub.CartID).Error; err != nil {
			return err
		}
		if cart.UserID != p.UserID {
			return ErrOwnership
		}

		// re-acquire under the cart lock; the sub-cart may have been removed
		// or checked out in the window before the lock was granted
		if err := forUpdate(tx).First(&sub, p.SubCartID).Error; err != nil {
			return err
		}

		var addr models.Address
		if err := tx.Where("id = ? AND user_id = ?", p.AddressID, p.UserID).
			First(&addr).Error; err != nil {
			return err
		}

		var items []models.SubCartItem
		if err := tx.Where("sub_cart_id = ?", sub.ID).Order("id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptySubCart
		}

		// the client-supplied total is validated, not trusted
		var linesTotal int64
		for _, it := range items {
			linesTotal += it.Price
		}
		if p.Total != linesTotal+p.ShippingFee {
			return ErrTotalMismatch
		}

		now := time.Now().UTC()
		order = models.Order{
			UserID:         p.UserID,
			RestaurantID:   sub.RestaurantID,
			AddressID:      p.AddressID,
			ShippingFee:    p.ShippingFee,
			Total:          p.Total,
			DeliveryStatus: models.OrderStatusPending,
			OrderDate:      now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		payment := models.Payment{
			OrderID:        order.ID,
			UserID:         p.UserID,
			Amount:         p.Total,
			PaymentMethod:  p.PaymentMethod,
			TransactionRef: p.PaymentRef,
			IsSuccessful:   p.PaymentOK,
			CreatedDate:    now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		// quantity and sub_total are copied verbatim from the cart lines so
		// later food price changes never touch historical orders
		for _, it := range items {
			detail := models.OrderDetail{
				OrderID:  order.ID,
				FoodID:   it.FoodID,
				Quantity: it.Quantity,
				SubTotal: it.Price,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("sub_cart_id = ?", sub.ID).Delete(&models.SubCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.SubCart{}, sub.ID).Error; err != nil {
			return err
		}
		return r.recountCart(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Preload("Details").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
