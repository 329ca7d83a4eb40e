package service

import (
	"context"
	"fmt"

	"github.com/efoodhub/backend/internal/cache"
	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
	"github.com/efoodhub/backend/internal/util"
)

type CartService struct {
	Repo  *repo.GormRepo
	Cache *cache.Client
}

// AddItem prices the food at add time and delegates the tree mutation to the
// repo. A hidden or missing food reads as not found either way.
func (s *CartService) AddItem(ctx context.Context, userID, foodID uint, quantity int, note string) (*models.Cart, error) {
	// zero means the field was absent; an explicit negative is a client error
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}
	if foodID == 0 {
		return nil, fmt.Errorf("%w: food_id required", ErrValidation)
	}

	food, err := s.lookupFood(ctx, foodID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !food.IsAvailable {
		return nil, fmt.Errorf("%w: food %d is not available", ErrNotFound, foodID)
	}

	cart, err := s.Repo.AddItem(ctx, userID, food, quantity, note)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, delta int) (*models.SubCartItem, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: quantity delta must be non-zero", ErrValidation)
	}
	item, err := s.Repo.UpdateItemQuantity(ctx, userID, itemID, delta)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return item, nil
}

func (s *CartService) RemoveSubCarts(ctx context.Context, userID, cartID uint, itemsNumber int, ids []uint) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids required", ErrValidation)
	}
	return mapStoreErr(s.Repo.RemoveSubCarts(ctx, userID, cartID, itemsNumber, ids))
}

// GetMyCart returns the cart header plus one page of its sub-carts.
func (s *CartService) GetMyCart(ctx context.Context, userID uint, page, size int) (*models.Cart, []models.SubCart, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, nil, mapStoreErr(err)
	}
	offset, limit := util.Calculate(page, size)
	subs, err := s.Repo.GetSubCarts(ctx, cart.ID, offset, limit)
	if err != nil {
		return nil, nil, mapStoreErr(err)
	}
	cart.SubCarts = nil
	return cart, subs, nil
}

// lookupFood reads through the redis cache; catalog rows are read-only here
// so a short TTL is safe, and prices are snapshotted anyway.
func (s *CartService) lookupFood(ctx context.Context, foodID uint) (*models.Food, error) {
	if food, ok := s.Cache.GetFood(ctx, foodID); ok {
		return food, nil
	}
	food, err := s.Repo.GetFood(ctx, foodID)
	if err != nil {
		return nil, err
	}
	s.Cache.SetFood(ctx, food)
	return food, nil
}
