package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/repo"
	"github.com/efoodhub/backend/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Repo *repo.GormRepo

	Auth   *AuthHTTP
	Cart   *CartHTTP
	Order  *OrderHTTP
	Review *ReviewHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
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

	r := &repo.GormRepo{DB: db}
	env := &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Repo: r,
	}

	env.Auth = &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: []byte("test-jwt-secret")}}
	env.Cart = &CartHTTP{Svc: &service.CartService{Repo: r}}
	env.Order = &OrderHTTP{
		Checkout: &service.CheckoutService{Repo: r, Gateway: service.WalletGateway{}},
		Orders:   &service.OrderService{Repo: r},
	}
	env.Review = &ReviewHTTP{Svc: &service.ReviewService{Repo: r}}

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser stamps the context the way the auth middleware would.
func asUser(c echo.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

func (env *testEnv) seedFood(price int64) *models.Food {
	env.T.Helper()
	rest := &models.Restaurant{Name: "pho_corner", Active: true}
	require.NoError(env.T, env.DB.Create(rest).Error)
	food := &models.Food{Name: "pho_bo", Price: price, RestaurantID: rest.ID, IsAvailable: true}
	require.NoError(env.T, env.DB.Create(food).Error)
	return food
}

func (env *testEnv) seedAddress(userID uint) *models.Address {
	env.T.Helper()
	a := &models.Address{UserID: userID, ReceiverName: "test_receiver", Address: "1 Test Street"}
	require.NoError(env.T, env.DB.Create(a).Error)
	return a
}
