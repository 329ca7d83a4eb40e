package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/efoodhub/backend/internal/cache"
	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
	"github.com/efoodhub/backend/internal/service/search"
	"github.com/efoodhub/backend/internal/util"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Cache  *cache.Client
	ES     *elasticsearch.Client
	Images ImageStore
}

type FoodView struct {
	models.Food
	ImageURL string `json:"image_url,omitempty"`
}

func (s *CatalogService) view(foods []models.Food) []FoodView {
	out := make([]FoodView, len(foods))
	for i, f := range foods {
		out[i] = FoodView{Food: f}
		if s.Images != nil {
			out[i].ImageURL = s.Images.ResolveURL(f.ImageRef)
		}
	}
	return out
}

func (s *CatalogService) ListFoods(ctx context.Context, f repo.FoodFilter, page, size int) ([]FoodView, error) {
	offset, limit := util.Calculate(page, size)
	foods, err := s.Repo.ListFoods(ctx, f, offset, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return s.view(foods), nil
}

func (s *CatalogService) ListRestaurantFoods(ctx context.Context, restaurantID uint) ([]FoodView, error) {
	if _, err := s.Repo.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, mapStoreErr(err)
	}
	foods, err := s.Repo.ListRestaurantFoods(ctx, restaurantID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return s.view(foods), nil
}

// SearchFoods delegates full-text matching to Elasticsearch.
func (s *CatalogService) SearchFoods(ctx context.Context, query string, page, size int) (int64, []FoodView, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if s.ES == nil {
		return 0, nil, fmt.Errorf("search backend not configured")
	}
	from, limit := util.Calculate(page, size)
	total, foods, err := search.Search(ctx, s.ES, search.FoodIndex, query, from, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, s.view(foods), nil
}

// CreateFood stores a food row, invalidates its cache slot and indexes the
// document. Index failures are logged, not fatal: the row is the source of
// truth and the index catches up on the next upsert.
func (s *CatalogService) CreateFood(ctx context.Context, food *models.Food) error {
	if food.Name == "" || food.Price <= 0 || food.RestaurantID == 0 {
		return fmt.Errorf("%w: name, positive price and restaurant_id required", ErrValidation)
	}
	if _, err := s.Repo.GetRestaurant(ctx, food.RestaurantID); err != nil {
		return mapStoreErr(err)
	}
	if err := s.Repo.CreateFood(ctx, food); err != nil {
		return mapStoreErr(err)
	}
	s.Cache.InvalidateFood(ctx, food.ID)

	if s.ES != nil {
		if err := search.IndexFood(ctx, s.ES, search.FoodIndex, food); err != nil {
			slog.Warn("food index failed", "food_id", food.ID, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) CreateAddress(ctx context.Context, addr *models.Address) error {
	if addr.Address == "" {
		return fmt.Errorf("%w: address required", ErrValidation)
	}
	return mapStoreErr(s.Repo.CreateAddress(ctx, addr))
}

func (s *CatalogService) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	addrs, err := s.Repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return addrs, nil
}
