package model

type PreferenceItem struct {
	Title      string `json:"title"`
	Quantity   int32  `json:"quantity"`
	UnitPrice  int32  `json:"unit_price"`
	CurrencyID string `json:"currency_id"`
}

type PreferencePayer struct {
	Email string `json:"email"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             PreferencePayer  `json:"payer"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url"`
}

type PreferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// WebhookNotification is the body MercadoPago posts to the notification URL.
// Only the data.id is trusted, and only after signature verification; the
// authoritative payment state is always re-fetched from the gateway.
type WebhookNotification struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Action   string `json:"action"`
	LiveMode bool   `json:"live_mode"`
	Data     struct {
		ID string `json:"id"`
	} `json:"data"`
}

type PaymentPayer struct {
	Email string `json:"email"`
}

type PaymentInfo struct {
	ID                int64        `json:"id"`
	Status            string       `json:"status"`
	StatusDetail      string       `json:"status_detail"`
	ExternalReference string       `json:"external_reference"`
	TransactionAmount float64      `json:"transaction_amount"`
	Payer             PaymentPayer `json:"payer"`
}
