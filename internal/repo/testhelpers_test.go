package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	// one shared in-memory database per test
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

func newTestRepo(t *testing.T) *GormRepo {
	return &GormRepo{DB: InitTestDB(t)}
}

func seedFood(t *testing.T, db *gorm.DB, restaurantID uint, name string, price int64) *models.Food {
	t.Helper()
	food := &models.Food{
		Name:         name,
		Price:        price,
		RestaurantID: restaurantID,
		IsAvailable:  true,
	}
	if err := db.Create(food).Error; err != nil {
		t.Fatalf("failed to seed food: %v", err)
	}
	return food
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, Active: true}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return r
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	a := &models.Address{UserID: userID, ReceiverName: "test_receiver", Address: "1 Test Street"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to seed address: %v", err)
	}
	return a
}
