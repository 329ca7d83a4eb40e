package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/efoodhub/backend/internal/mykafka"
	"github.com/efoodhub/backend/internal/service"
)

func GetID(c echo.Context) (uint, error) {
	v := c.Get("user_id")
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func GetRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryIntParam(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// httpStatus maps the service error taxonomy onto response codes. Unmapped
// errors are storage or transaction failures and read as 500.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// userMessage keeps internal detail out of client responses.
func userMessage(err error) string {
	switch httpStatus(err) {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "conflict"
	}
	return "internal error"
}

// publish sends an event best-effort; a broker hiccup must not fail the
// request that already committed.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
