package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/maxierra/tienda360-api/internal/client"
	"github.com/maxierra/tienda360-api/internal/dto"
	"github.com/maxierra/tienda360-api/internal/model"
	"github.com/maxierra/tienda360-api/internal/repository"
)

// fallback for preview/local deployments with no public URL configured
const defaultBaseURL = "http://localhost:3000"

type PaymentService interface {
	CreatePreference(ctx context.Context, req *dto.CreatePreferenceRequest, origin string) (*dto.CreatePreferenceResponse, error)
	HandleWebhook(ctx context.Context, headers http.Header, body []byte) error
}

type paymentServiceImpl struct {
	mpClient         client.MercadoPagoClient
	baseURL          string
	paymentRepo      repository.PaymentRepository
	subscriptionRepo repository.SubscriptionRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewPaymentService(
	mpClient client.MercadoPagoClient,
	baseURL string,
	paymentRepo repository.PaymentRepository,
	subscriptionRepo repository.SubscriptionRepository,
	webhookEventRepo repository.WebhookEventRepository,
) PaymentService {
	return &paymentServiceImpl{
		mpClient:         mpClient,
		baseURL:          baseURL,
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

// resolveBaseURL picks the root for back URLs and the notification URL:
// configured BASE_URL, else the request Origin, else localhost. The gateway
// rejects relative URLs, so there is always an absolute fallback.
func (s *paymentServiceImpl) resolveBaseURL(origin string) string {
	if s.baseURL != "" {
		return strings.TrimRight(s.baseURL, "/")
	}
	if origin != "" {
		return strings.TrimRight(origin, "/")
	}
	return defaultBaseURL
}

func (s *paymentServiceImpl) CreatePreference(ctx context.Context, req *dto.CreatePreferenceRequest, origin string) (*dto.CreatePreferenceResponse, error) {
	if req.Plan == "" {
		return nil, &MissingFieldError{Field: "plan"}
	}
	if req.UserEmail == "" {
		return nil, &MissingFieldError{Field: "userEmail"}
	}

	plan, ok := PlanByCode(req.Plan)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, req.Plan)
	}

	base := s.resolveBaseURL(origin)

	// unique per attempt; the webhook correlates back through this value
	externalReference := fmt.Sprintf("%s-%d", plan.Code, time.Now().UnixMilli())

	prefReq := &model.PreferenceRequest{
		Items: []model.PreferenceItem{
			{
				Title:      plan.Title,
				Quantity:   1,
				UnitPrice:  plan.UnitPrice,
				CurrencyID: planCurrency,
			},
		},
		Payer: model.PreferencePayer{
			Email: req.UserEmail,
		},
		BackURLs: model.BackURLs{
			Success: base + "/subscription/success",
			Failure: base + "/subscription/failure",
			Pending: base + "/subscription/pending",
		},
		AutoReturn:        "approved",
		ExternalReference: externalReference,
		NotificationURL:   base + "/api/mercadopago/webhook",
	}

	// No automatic retry here: a second call would create a second chargeable
	// preference. Retrying is the caller's decision.
	result, err := s.mpClient.CreatePreference(ctx, prefReq)
	if err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("mercadopago create preference: %w", err)}
	}

	err = s.paymentRepo.Create(ctx, &model.Payment{
		ExternalReference: externalReference,
		UserID:            req.UserID,
		SubscriptionID:    req.SubscriptionID,
		Plan:              plan.Code,
		PayerEmail:        req.UserEmail,
		Amount:            plan.UnitPrice,
		Currency:          planCurrency,
		Status:            "created",
	})
	if err != nil {
		// The gateway already owns the preference; losing the local row only
		// degrades webhook correlation, so log instead of failing the request.
		slog.Error("store payment record", "external_reference", externalReference, "error", err)
	}

	return &dto.CreatePreferenceResponse{
		ID:        result.ID,
		InitPoint: result.InitPoint,
	}, nil
}

func subscriptionStatusFor(gatewayStatus string) (string, bool) {
	switch gatewayStatus {
	case "approved":
		return "active", true
	case "pending", "in_process", "authorized":
		return "trial", true
	case "rejected", "cancelled", "refunded", "charged_back":
		return "inactive", true
	}
	return "", false
}

// HandleWebhook is the only writer of subscription activation state. Redirect
// query parameters never reach this path; the payment is re-fetched from the
// gateway after the notification signature checks out.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, headers http.Header, body []byte) error {
	var notif model.WebhookNotification
	if err := json.Unmarshal(body, &notif); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	if notif.Type != "payment" {
		slog.Info("ignoring webhook notification", "type", notif.Type)
		return nil
	}

	if err := s.mpClient.VerifyWebhookSignature(headers, notif.Data.ID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	eventID := "payment-" + notif.Data.ID
	processed, err := s.webhookEventRepo.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		return nil
	}

	info, err := s.mpClient.GetPayment(ctx, notif.Data.ID)
	if err != nil {
		return &GatewayError{Err: fmt.Errorf("mercadopago get payment: %w", err)}
	}

	payment, err := s.paymentRepo.FindByExternalReference(ctx, info.ExternalReference)
	if err != nil {
		return fmt.Errorf("find payment %s: %w", info.ExternalReference, err)
	}

	status, known := subscriptionStatusFor(info.Status)
	if !known {
		slog.Warn("unknown gateway payment status", "status", info.Status, "payment_id", info.ID)
		return nil
	}

	if payment.UserID == "" {
		slog.Warn("payment has no user, skipping subscription update", "external_reference", payment.ExternalReference)
	} else {
		err = s.subscriptionRepo.Upsert(ctx, &model.Subscription{
			ID:        payment.SubscriptionID,
			UserID:    payment.UserID,
			Plan:      payment.Plan,
			Status:    status,
			PaymentID: info.ID,
		})
		if err != nil {
			return fmt.Errorf("upsert subscription: %w", err)
		}
	}

	if err := s.paymentRepo.MarkReconciled(ctx, payment.ExternalReference, info.Status, info.ID); err != nil {
		return fmt.Errorf("mark payment reconciled: %w", err)
	}

	if err := s.webhookEventRepo.MarkProcessed(ctx, eventID, "payment"); err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}

	slog.Info("payment reconciled",
		"payment_id", info.ID,
		"external_reference", payment.ExternalReference,
		"gateway_status", info.Status,
		"subscription_status", status,
	)

	return nil
}
