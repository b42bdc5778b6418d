package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maxierra/tienda360-api/internal/config"
	"github.com/maxierra/tienda360-api/internal/model"
)

type MercadoPagoClient interface {
	CreatePreference(ctx context.Context, req *model.PreferenceRequest) (*model.PreferenceResult, error)
	GetPayment(ctx context.Context, paymentID string) (*model.PaymentInfo, error)
	VerifyWebhookSignature(headers http.Header, dataID string) error
}

type mercadoPagoClientImpl struct {
	httpClient    *http.Client
	baseApiURL    string
	accessToken   string
	webhookSecret string
}

func NewMercadoPagoClient(mpCfg *config.MercadoPago) MercadoPagoClient {
	return &mercadoPagoClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    mpCfg.BaseApiURL,
		accessToken:   mpCfg.AccessToken,
		webhookSecret: mpCfg.WebhookSecret,
	}
}

func (c *mercadoPagoClientImpl) CreatePreference(ctx context.Context, prefReq *model.PreferenceRequest) (*model.PreferenceResult, error) {
	body, err := json.Marshal(prefReq)
	if err != nil {
		return nil, fmt.Errorf("marshal preference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/checkout/preferences",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercadopago error %d: %s", resp.StatusCode, string(b))
	}

	var result model.PreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode mercadopago response: %w", err)
	}

	return &result, nil
}

func (c *mercadoPagoClientImpl) GetPayment(ctx context.Context, paymentID string) (*model.PaymentInfo, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseApiURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercadopago error %d: %s", resp.StatusCode, string(b))
	}

	var info model.PaymentInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode payment info: %w", err)
	}

	return &info, nil
}

// VerifyWebhookSignature checks the x-signature header against the configured
// webhook secret. MercadoPago signs the manifest
// "id:{data.id};request-id:{x-request-id};ts:{ts};" with HMAC-SHA256.
func (c *mercadoPagoClientImpl) VerifyWebhookSignature(headers http.Header, dataID string) error {
	signature := headers.Get("x-signature")
	if signature == "" {
		return fmt.Errorf("missing x-signature header")
	}
	requestID := headers.Get("x-request-id")

	var ts, v1 string
	for _, part := range strings.Split(signature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("malformed x-signature header")
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return fmt.Errorf("webhook signature mismatch")
	}

	return nil
}
