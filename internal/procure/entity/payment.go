package entity

import "time"

// PurchasePayment payment ledger entry against an order. Failed payments are
// excluded from every paid-to-date sum.
type PurchasePayment struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	PaymentCode string `json:"payment_code" gorm:"size:32;uniqueIndex;not null"`
	OrderID     string `json:"order_id" gorm:"size:32;not null;index"`
	InvoiceID   string `json:"invoice_id" gorm:"size:32;not null;index"`
	VendorID    string `json:"vendor_id" gorm:"size:32;not null;index"`

	Phase  string  `json:"phase" gorm:"size:20;not null"` // advance/final
	Amount float64 `json:"amount" gorm:"type:decimal(15,2);not null"`
	Status string  `json:"status" gorm:"size:20;default:pending"` // pending/completed/failed/receipt_sent

	PaymentDate     *time.Time `json:"payment_date"`
	ReferenceNumber string     `json:"reference_number" gorm:"size:100"`
	ReceiptURL      string     `json:"receipt_url" gorm:"size:500"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`
}

func (PurchasePayment) TableName() string {
	return "purchase_payments"
}

const (
	PaymentPhaseAdvance = "advance"
	PaymentPhaseFinal   = "final"
)

const (
	PaymentStatusPending     = "pending"
	PaymentStatusCompleted   = "completed"
	PaymentStatusFailed      = "failed"
	PaymentStatusReceiptSent = "receipt_sent"
)

// ValidPaymentTransitions payment state machine.
var ValidPaymentTransitions = map[string][]string{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusCompleted: {PaymentStatusReceiptSent},
}
