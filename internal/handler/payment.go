package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxierra/tienda360-api/internal/dto"
	"github.com/maxierra/tienda360-api/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePreference(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePreferenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	origin := c.Request().Header.Get("Origin")

	resp, err := h.paymentService.CreatePreference(ctx, &req, origin)
	if err != nil {
		var missing *service.MissingFieldError
		switch {
		case errors.As(err, &missing), errors.Is(err, service.ErrInvalidPlan):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			slog.Error("create preference", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	err = h.paymentService.HandleWebhook(ctx, c.Request().Header, body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			slog.Warn("rejected webhook", "error", err)
			return c.NoContent(http.StatusBadRequest)
		}
		// non-2xx makes the gateway redeliver the notification
		slog.Error("handle webhook", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
