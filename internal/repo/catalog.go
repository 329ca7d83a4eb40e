package repo

import (
	"context"

	"github.com/efoodhub/backend/internal/models"
)

// Catalog entities are read-only from the cart/checkout core's perspective;
// the write side below serves the restaurant-facing endpoints.

func (r *GormRepo) GetFood(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	if err := r.DB.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *GormRepo) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

type FoodFilter struct {
	Name       string
	MinPrice   int64
	MaxPrice   int64
	Restaurant string
}

// ListFoods applies the catalog browse filters in a single query.
func (r *GormRepo) ListFoods(ctx context.Context, f FoodFilter, offset, limit int) ([]models.Food, error) {
	q := r.DB.WithContext(ctx).Model(&models.Food{}).Where("foods.is_available = ?", true)

	if f.Name != "" {
		q = q.Where("foods.name LIKE ?", "%"+f.Name+"%")
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 {
		q = q.Where("foods.price BETWEEN ? AND ?", f.MinPrice, f.MaxPrice)
	}
	if f.Restaurant != "" {
		q = q.Joins("JOIN restaurants ON restaurants.id = foods.restaurant_id").
			Where("restaurants.name LIKE ?", "%"+f.Restaurant+"%")
	}

	var foods []models.Food
	if err := q.Order("foods.id").Offset(offset).Limit(limit).Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *GormRepo) ListRestaurantFoods(ctx context.Context, restaurantID uint) ([]models.Food, error) {
	var foods []models.Food
	if err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("id").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *GormRepo) CreateFood(ctx context.Context, food *models.Food) error {
	return r.DB.WithContext(ctx).Create(food).Error
}

func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.Address) error {
	return r.DB.WithContext(ctx).Create(addr).Error
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}
