package dto

import "github.com/shopspring/decimal"

type CreatePreferenceRequest struct {
	Plan           string `json:"plan"`
	UserEmail      string `json:"userEmail"`
	UserID         string `json:"userId,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

type CreatePreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type SubscriptionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Plan      string `json:"plan"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type SaleItemInput struct {
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateSaleRequest struct {
	Items         []SaleItemInput `json:"items"`
	PaymentMethod string          `json:"payment_method"`
}

type CreateSaleResponse struct {
	SaleID string          `json:"sale_id"`
	Total  decimal.Decimal `json:"total"`
}

type SalesSummaryResponse struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}
