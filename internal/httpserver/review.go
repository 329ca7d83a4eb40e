package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/efoodhub/backend/internal/logging"
	"github.com/efoodhub/backend/internal/service"
	"github.com/efoodhub/backend/internal/transport"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("create_review_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.MessageResponse{Message: "unauthorized"})
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_review_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid body"})
	}

	review, err := h.Svc.Create(ctx, userID, req.OrderDetailID, req.Stars, req.Comment)
	if err != nil {
		status := httpStatus(err)
		l.Warn("create_review_error", "status", status, "error", err)
		return c.JSON(status, transport.MessageResponse{Message: userMessage(err)})
	}

	l.Info("create_review_success", "review_id", review.ID)
	return c.JSON(http.StatusCreated, review)
}
