package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
)

// CreateReview attaches a review to an order detail the user owns and flips
// its evaluated flag. A second submission against the same line is refused;
// the unique index on order_detail_id backs that up at the storage level.
func (r *GormRepo) CreateReview(ctx context.Context, userID, orderDetailID uint, stars int, comment string) (*models.Review, error) {
	var review models.Review
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var detail models.OrderDetail
		if err := forUpdate(tx).First(&detail, orderDetailID).Error; err != nil {
			return err
		}
		var order models.Order
		if err := tx.First(&order, detail.OrderID).Error; err != nil {
			return err
		}
		if order.UserID != userID {
			return ErrOwnership
		}
		if detail.Evaluated {
			return ErrAlreadyEvaluated
		}

		review = models.Review{
			UserID:        userID,
			OrderDetailID: orderDetailID,
			Stars:         stars,
			Comment:       comment,
			CreatedDate:   time.Now().UTC(),
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&detail).Update("evaluated", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
