package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
)

// AddItem resolves or creates the user's cart, the sub-cart for the food's
// restaurant and the line for the food itself, then resums the parents. The
// line increment is a single atomic UPDATE so two concurrent adds of the same
// food cannot lose one another; the unique (sub_cart, food) index stops a
// duplicate row from the create fallback.
func (r *GormRepo) AddItem(ctx context.Context, userID uint, food *models.Food, quantity int, note string) (*models.Cart, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := forUpdate(tx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cart = models.Cart{UserID: userID}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		}

		var sub models.SubCart
		if err := forUpdate(tx).
			Where("cart_id = ? AND restaurant_id = ?", cart.ID, food.RestaurantID).
			First(&sub).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			sub = models.SubCart{CartID: cart.ID, RestaurantID: food.RestaurantID}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		}

		// price is recomputed from the new quantity, never patched additively
		res := tx.Model(&models.SubCartItem{}).
			Where("sub_cart_id = ? AND food_id = ?", sub.ID, food.ID).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", quantity),
				"price":    gorm.Expr("(quantity + ?) * ?", quantity, food.Price),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item := models.SubCartItem{
				SubCartID:    sub.ID,
				FoodID:       food.ID,
				RestaurantID: food.RestaurantID,
				Quantity:     quantity,
				Price:        int64(quantity) * food.Price,
				Note:         note,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		if err := r.resumSubCart(tx, sub.ID); err != nil {
			return err
		}
		return r.recountCart(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return r.GetCart(ctx, userID)
}

// UpdateItemQuantity applies a signed delta to a line owned by the user. The
// parent sub-cart is locked first so the update serializes with checkout and
// sibling mutations; the line quantity is read under that lock, never before
// it. A delta that would drop the quantity to zero or below is rejected;
// removal must be explicit.
func (r *GormRepo) UpdateItemQuantity(ctx context.Context, userID, itemID uint, delta int) (*models.SubCartItem, error) {
	var item models.SubCartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// unlocked read only locates the parent sub-cart
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}

		var sub models.SubCart
		if err := forUpdate(tx).First(&sub, item.SubCartID).Error; err != nil {
			return err
		}
		var cart models.Cart
		if err := tx.First(&cart, sub.CartID).Error; err != nil {
			return err
		}
		if cart.UserID != userID {
			return ErrOwnership
		}

		// authoritative re-read now that sibling mutations are fenced out;
		// an increment committed before the lock was acquired must not be
		// overwritten by a quantity computed from the earlier read
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}

		newQty := item.Quantity + delta
		if newQty <= 0 {
			return ErrQuantityUnderflow
		}

		// fresh unit-price snapshot at update time
		var food models.Food
		if err := tx.First(&food, item.FoodID).Error; err != nil {
			return err
		}

		if err := tx.Model(&item).Updates(map[string]interface{}{
			"quantity": newQty,
			"price":    int64(newQty) * food.Price,
		}).Error; err != nil {
			return err
		}
		item.Quantity = newQty
		item.Price = int64(newQty) * food.Price

		if err := r.resumSubCart(tx, sub.ID); err != nil {
			return err
		}
		return r.recountCart(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveSubCarts deletes the named sub-carts from the cart in one
// transaction. itemsNumber is the caller's view of how many sub-carts it is
// removing and must match, so a stale client cannot leave the count skewed.
func (r *GormRepo) RemoveSubCarts(ctx context.Context, userID, cartID uint, itemsNumber int, ids []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := forUpdate(tx).First(&cart, cartID).Error; err != nil {
			return err
		}
		if cart.UserID != userID {
			return ErrOwnership
		}
		if itemsNumber != len(ids) {
			return ErrCountMismatch
		}

		var n int64
		if err := tx.Model(&models.SubCart{}).
			Where("cart_id = ? AND id IN ?", cartID, ids).
			Count(&n).Error; err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("sub_cart_id IN ?", ids).Delete(&models.SubCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ? AND id IN ?", cartID, ids).Delete(&models.SubCart{}).Error; err != nil {
			return err
		}
		return r.recountCart(tx, cartID)
	})
}

func (r *GormRepo) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("SubCarts.Items").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetSubCarts returns one page of the cart's sub-carts with their items.
func (r *GormRepo) GetSubCarts(ctx context.Context, cartID uint, offset, limit int) ([]models.SubCart, error) {
	var subs []models.SubCart
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("cart_id = ?", cartID).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
