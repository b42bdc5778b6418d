package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/maxierra/tienda360-api/internal/dto"
	"github.com/maxierra/tienda360-api/internal/service"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

func userIDFromContext(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}
	return userID, nil
}

func (h *SaleHandler) CreateSale(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.saleService.RecordSale(ctx, userID, &req)
	if err != nil {
		var missing *service.MissingFieldError
		if errors.As(err, &missing) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		slog.Error("record sale", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *SaleHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	// default window: start of today
	since := time.Now().Truncate(24 * time.Hour)
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "since must be RFC3339"})
		}
		since = parsed
	}

	resp, err := h.saleService.SummarySince(ctx, userID, since)
	if err != nil {
		slog.Error("sales summary", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, resp)
}
