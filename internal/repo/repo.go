package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/efoodhub/backend/internal/models"
)

// Storage-level failures the service layer maps onto its error taxonomy.
var (
	ErrOwnership         = errors.New("resource not owned by user")
	ErrEmptySubCart      = errors.New("sub cart has no items")
	ErrQuantityUnderflow = errors.New("quantity would drop below one")
	ErrCountMismatch     = errors.New("items number does not match removal request")
	ErrTotalMismatch     = errors.New("total does not match sub cart contents")
	ErrAlreadyEvaluated  = errors.New("order detail already evaluated")
	ErrStatusTransition  = errors.New("illegal delivery status transition")
)

type GormRepo struct {
	DB *gorm.DB
}

// forUpdate takes a row lock on dialects that support it. sqlite, used by the
// test suite, serializes writers on its own and rejects FOR UPDATE syntax.
// Lock order across all mutation paths is cart, then sub-cart, then line;
// a path that learns the parent from the child reads unlocked first and
// re-reads once the parent lock is held.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// resumSubCart recomputes a sub-cart's totals as the sum over its current
// items. Full resummation keeps the aggregate self-correcting under
// concurrent siblings; incremental patching drifts.
func (r *GormRepo) resumSubCart(tx *gorm.DB, subCartID uint) error {
	var sums struct {
		TotalPrice    int64
		TotalQuantity int
	}
	if err := tx.Model(&models.SubCartItem{}).
		Select("COALESCE(SUM(price), 0) AS total_price, COALESCE(SUM(quantity), 0) AS total_quantity").
		Where("sub_cart_id = ?", subCartID).
		Scan(&sums).Error; err != nil {
		return err
	}
	return tx.Model(&models.SubCart{}).Where("id = ?", subCartID).
		Updates(map[string]interface{}{
			"total_price":    sums.TotalPrice,
			"total_quantity": sums.TotalQuantity,
		}).Error
}

// recountCart recomputes items_number from the live sub-cart count and
// deletes the cart once it reaches zero. Empty carts never persist.
func (r *GormRepo) recountCart(tx *gorm.DB, cartID uint) error {
	var n int64
	if err := tx.Model(&models.SubCart{}).Where("cart_id = ?", cartID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return tx.Delete(&models.Cart{}, cartID).Error
	}
	return tx.Model(&models.Cart{}).Where("id = ?", cartID).Update("items_number", n).Error
}
