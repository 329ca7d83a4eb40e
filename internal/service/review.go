package service

import (
	"context"
	"fmt"

	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) Create(ctx context.Context, userID, orderDetailID uint, stars int, comment string) (*models.Review, error) {
	if orderDetailID == 0 {
		return nil, fmt.Errorf("%w: order_detail_id required", ErrValidation)
	}
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", ErrValidation)
	}

	review, err := s.Repo.CreateReview(ctx, userID, orderDetailID, stars, comment)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return review, nil
}
