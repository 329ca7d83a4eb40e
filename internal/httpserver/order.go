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

type OrderHTTP struct {
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("place_order_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	order, err := h.Checkout.PlaceOrder(ctx, userID, service.PlaceOrderInput{
		SubCartID:      req.SubCartID,
		AddressID:      req.AddressID,
		ShippingFee:    req.ShippingFee,
		Total:          req.TotalPrice,
		PaymentMethod:  req.Payment,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		status := httpStatus(err)
		l.Warn("place_order_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	publish(c, h.Producer, mykafka.TopicOrderEvents, fmt.Sprint(userID), map[string]any{
		"type":     "order_created",
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.Total,
	})

	l.Info("place_order_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "order placed"})
}

func (h *OrderHTTP) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_my_orders")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	orders, err := h.Orders.ListMyOrders(ctx, userID, queryInt(c, "page", 1), queryInt(c, "size", 10))
	if err != nil {
		status := httpStatus(err)
		l.Warn("list_orders_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("update_status_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	orderID := uint(queryIntParam(c, "id"))
	if orderID == 0 {
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid order id"})
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	order, err := h.Orders.UpdateDeliveryStatus(ctx, userID, GetRole(c), orderID, req.Status)
	if err != nil {
		status := httpStatus(err)
		l.Warn("update_status_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	publish(c, h.Producer, mykafka.TopicOrderEvents, fmt.Sprint(order.UserID), map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"status":   order.DeliveryStatus,
	})

	l.Info("update_status_success", "order_id", order.ID, "status", order.DeliveryStatus)
	return c.JSON(http.StatusOK, order)
}
