package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxierra/tienda360-api/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) GetByUserID(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.Param("userID")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing user id"})
	}

	sub, err := h.subscriptionService.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "subscription not found"})
		}
		slog.Error("get subscription", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, sub)
}
