package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Food{}, &models.Address{},
		&models.Cart{}, &models.SubCart{}, &models.SubCartItem{},
		&models.Order{}, &models.OrderDetail{}, &models.Payment{}, &models.Review{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	return &repo.GormRepo{DB: InitTestDB(t)}
}

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Restaurant, *models.Food) {
	t.Helper()
	rest := &models.Restaurant{Name: "pho_corner", Active: true}
	require.NoError(t, db.Create(rest).Error)
	food := &models.Food{Name: "pho_bo", Price: 50000, RestaurantID: rest.ID, IsAvailable: true}
	require.NoError(t, db.Create(food).Error)
	return rest, food
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	a := &models.Address{UserID: userID, ReceiverName: "test_receiver", Address: "1 Test Street"}
	require.NoError(t, db.Create(a).Error)
	return a
}

// fillSubCart puts one line into the user's cart and returns the sub-cart id.
func fillSubCart(t *testing.T, r *repo.GormRepo, userID uint, food *models.Food, quantity int) uint {
	t.Helper()
	cart, err := r.AddItem(context.Background(), userID, food, quantity, "")
	require.NoError(t, err)
	require.Len(t, cart.SubCarts, 1)
	return cart.SubCarts[0].ID
}
