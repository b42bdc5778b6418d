package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID     string `gorm:"primaryKey;size:64;not null"`
	UserID string `gorm:"size:64;uniqueIndex;not null"`
	Plan   string `gorm:"size:16;not null"`       // monthly, annual
	Status string `gorm:"size:16;index;not null"` // active, trial, inactive
	// last gateway payment that touched this subscription
	PaymentID int64 `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment is the local record of a preference request, keyed by the
// external reference sent to the gateway. The webhook resolves the paying
// user through this row.
type Payment struct {
	ExternalReference string `gorm:"primaryKey;size:128;not null"`
	UserID            string `gorm:"size:64;index"`
	SubscriptionID    string `gorm:"size:64"`
	Plan              string `gorm:"size:16;not null"`
	PayerEmail        string `gorm:"size:255;not null"`
	Amount            int32  `gorm:"not null"`
	Currency          string `gorm:"size:8;not null"`
	Status            string `gorm:"size:32;index;not null"` // created, approved, pending, rejected, ...
	GatewayPaymentID  int64  `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Sale struct {
	ID            string          `gorm:"primaryKey;size:64;not null"`
	UserID        string          `gorm:"size:64;index;not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"size:8;not null"`
	PaymentMethod string          `gorm:"size:32;not null"` // cash, card, transfer
	CreatedAt     time.Time
}

type SaleItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → sale.id
	SaleID    string          `gorm:"size:64;index;not null"`
	Name      string          `gorm:"size:255;not null"`
	Quantity  int32           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
