package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/efoodhub/backend/internal/logging"
	"github.com/efoodhub/backend/internal/models"
	"github.com/efoodhub/backend/internal/mykafka"
	"github.com/efoodhub/backend/internal/repo"
	"github.com/efoodhub/backend/internal/service"
	"github.com/efoodhub/backend/internal/transport"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *CatalogHTTP) ListFoods(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_foods")

	filter := repo.FoodFilter{
		Name:       c.QueryParam("name"),
		MinPrice:   int64(queryInt(c, "min_price", 0)),
		MaxPrice:   int64(queryInt(c, "max_price", 0)),
		Restaurant: c.QueryParam("restaurant"),
	}

	foods, err := h.Svc.ListFoods(ctx, filter, queryInt(c, "page", 1), queryInt(c, "size", 10))
	if err != nil {
		status := httpStatus(err)
		l.Warn("list_foods_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}
	return c.JSON(http.StatusOK, foods)
}

func (h *CatalogHTTP) ListRestaurantFoods(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.restaurant_foods")

	restaurantID := uint(queryIntParam(c, "id"))
	if restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid restaurant id"})
	}

	foods, err := h.Svc.ListRestaurantFoods(ctx, restaurantID)
	if err != nil {
		status := httpStatus(err)
		l.Warn("restaurant_foods_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}
	return c.JSON(http.StatusOK, foods)
}

func (h *CatalogHTTP) SearchFoods(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_foods")

	total, foods, err := h.Svc.SearchFoods(ctx, c.QueryParam("q"), queryInt(c, "page", 1), queryInt(c, "size", 10))
	if err != nil {
		status := httpStatus(err)
		l.Warn("search_foods_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total": total,
		"foods": foods,
	})
}

func (h *CatalogHTTP) CreateFood(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_food")

	if role := GetRole(c); role != "restaurant" && role != "admin" {
		l.Warn("create_food_error", "status", 401, "role", role)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.CreateFoodRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_food_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	food := &models.Food{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		RestaurantID: req.RestaurantID,
		ImageRef:     req.ImageRef,
		IsAvailable:  true,
	}
	if err := h.Svc.CreateFood(ctx, food); err != nil {
		status := httpStatus(err)
		l.Warn("create_food_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	publish(c, h.Producer, mykafka.TopicFoodEvents, fmt.Sprint(food.RestaurantID), map[string]any{
		"type":          "food_created",
		"food_id":       food.ID,
		"restaurant_id": food.RestaurantID,
	})

	l.Info("create_food_success", "food_id", food.ID)
	return c.JSON(http.StatusCreated, food)
}

func (h *CatalogHTTP) CreateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_address")

	userID, err := GetID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	addr := &models.Address{
		UserID:       userID,
		ReceiverName: req.ReceiverName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
	}
	if err := h.Svc.CreateAddress(ctx, addr); err != nil {
		status := httpStatus(err)
		l.Warn("create_address_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	return c.JSON(http.StatusCreated, addr)
}

func (h *CatalogHTTP) ListMyAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.my_addresses")

	userID, err := GetID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	addrs, err := h.Svc.ListAddresses(ctx, userID)
	if err != nil {
		status := httpStatus(err)
		l.Warn("my_addresses_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}
	return c.JSON(http.StatusOK, addrs)
}
