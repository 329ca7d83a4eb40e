package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/efoodhub/backend/internal/logging"
	"github.com/efoodhub/backend/internal/mykafka"
	"github.com/efoodhub/backend/internal/service"
	"github.com/efoodhub/backend/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	cart, err := h.Svc.AddItem(ctx, userID, req.FoodID, req.Quantity, req.Note)
	if err != nil {
		status := httpStatus(err)
		l.Warn("add_to_cart_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	publish(c, h.Producer, mykafka.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":     "cart_item_added",
		"user_id":  userID,
		"food_id":  req.FoodID,
		"quantity": req.Quantity,
	})

	l.Info("add_to_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusOK, transport.AddToCartResponse{Message: "item added to cart", Cart: cart})
}

func (h *CartHTTP) UpdateSubCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("update_item_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.UpdateSubCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	item, err := h.Svc.UpdateItem(ctx, userID, req.SubCartItemID, req.Quantity)
	if err != nil {
		status := httpStatus(err)
		l.Warn("update_item_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	publish(c, h.Producer, mykafka.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":         "cart_item_updated",
		"user_id":      userID,
		"item_id":      item.ID,
		"new_quantity": item.Quantity,
	})

	l.Info("update_item_success", "item_id", item.ID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "item updated"})
}

func (h *CartHTTP) DeleteSubCarts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_sub_carts")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("delete_sub_carts_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.DeleteSubCartsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("delete_sub_carts_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	if err := h.Svc.RemoveSubCarts(ctx, userID, req.CartID, req.ItemsNumber, req.IDs); err != nil {
		status := httpStatus(err)
		l.Warn("delete_sub_carts_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	publish(c, h.Producer, mykafka.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":    "sub_carts_deleted",
		"user_id": userID,
		"cart_id": req.CartID,
		"sub_ids": req.IDs,
	})

	l.Info("delete_sub_carts_success", "cart_id", req.CartID, "removed", len(req.IDs))
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "sub carts deleted"})
}

func (h *CartHTTP) GetMyCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.my_cart")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("my_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 10)

	cart, subs, err := h.Svc.GetMyCart(ctx, userID, page, size)
	if err != nil {
		status := httpStatus(err)
		l.Warn("my_cart_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	l.Info("my_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusOK, transport.MyCartResponse{
		Cart:     cart,
		SubCarts: subs,
		Page:     page,
		Size:     size,
	})
}
