package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxierra/tienda360-api/internal/config"
	"github.com/maxierra/tienda360-api/internal/model"
)

func signManifest(secret, dataID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := NewMercadoPagoClient(&config.MercadoPago{
		BaseApiURL:    "https://api.mercadopago.com",
		AccessToken:   "token",
		WebhookSecret: "shhh",
	})

	dataID := "555"
	requestID := "req-abc"
	ts := "1700000000"
	v1 := signManifest("shhh", dataID, requestID, ts)

	headers := http.Header{}
	headers.Set("x-signature", "ts="+ts+",v1="+v1)
	headers.Set("x-request-id", requestID)

	require.NoError(t, c.VerifyWebhookSignature(headers, dataID))

	t.Run("tampered data id", func(t *testing.T) {
		assert.Error(t, c.VerifyWebhookSignature(headers, "556"))
	})

	t.Run("wrong digest", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-signature", "ts="+ts+",v1=deadbeef")
		h.Set("x-request-id", requestID)
		assert.Error(t, c.VerifyWebhookSignature(h, dataID))
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Error(t, c.VerifyWebhookSignature(http.Header{}, dataID))
	})

	t.Run("malformed header", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-signature", "garbage")
		assert.Error(t, c.VerifyWebhookSignature(h, dataID))
	})
}

func TestCreatePreference(t *testing.T) {
	var gotAuth string
	var gotBody model.PreferenceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(model.PreferenceResult{
			ID:        "pref-1",
			InitPoint: "https://www.mercadopago.com.ar/init/pref-1",
		})
	}))
	defer srv.Close()

	c := NewMercadoPagoClient(&config.MercadoPago{
		BaseApiURL:  srv.URL,
		AccessToken: "token-123",
	})

	result, err := c.CreatePreference(context.Background(), &model.PreferenceRequest{
		Items: []model.PreferenceItem{
			{Title: "Suscripción Mensual", Quantity: 1, UnitPrice: 20000, CurrencyID: "ARS"},
		},
		Payer:             model.PreferencePayer{Email: "a@b.com"},
		ExternalReference: "monthly-1700000000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "monthly-1700000000000", gotBody.ExternalReference)
	assert.Equal(t, "pref-1", result.ID)
	assert.Contains(t, result.InitPoint, "mercadopago")
}

func TestCreatePreference_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid access token"}`))
	}))
	defer srv.Close()

	c := NewMercadoPagoClient(&config.MercadoPago{BaseApiURL: srv.URL, AccessToken: "bad"})

	_, err := c.CreatePreference(context.Background(), &model.PreferenceRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid access token")
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/555", r.URL.Path)
		json.NewEncoder(w).Encode(model.PaymentInfo{
			ID:                555,
			Status:            "approved",
			ExternalReference: "monthly-1700000000000",
		})
	}))
	defer srv.Close()

	c := NewMercadoPagoClient(&config.MercadoPago{BaseApiURL: srv.URL, AccessToken: "token"})

	info, err := c.GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, int64(555), info.ID)
	assert.Equal(t, "approved", info.Status)
}
