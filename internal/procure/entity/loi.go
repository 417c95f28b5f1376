package entity

import "time"

// PurchaseLOI letter of intent issued after a quotation (or its counter) is
// settled. Carries the payment split forward to the order stage.
type PurchaseLOI struct {
	ID                 string  `json:"id" gorm:"primaryKey;size:32"`
	LOICode            string  `json:"loi_code" gorm:"size:32;uniqueIndex;not null"`
	QuotationID        string  `json:"quotation_id" gorm:"size:32;not null;index"`
	CounterQuotationID *string `json:"counter_quotation_id" gorm:"size:32"`
	VendorID           string  `json:"vendor_id" gorm:"size:32;not null;index"`

	TotalAmount           float64 `json:"total_amount" gorm:"type:decimal(15,2);not null"`
	AdvancePaymentPercent float64 `json:"advance_payment_percent" gorm:"type:decimal(5,2);default:0"`
	FinalPaymentPercent   float64 `json:"final_payment_percent" gorm:"type:decimal(5,2);default:100"`

	Status             string     `json:"status" gorm:"size:20;default:sent"` // sent/accepted/rejected/confirmed
	VendorResponseDate *time.Time `json:"vendor_response_date"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (PurchaseLOI) TableName() string {
	return "purchase_lois"
}

const (
	LOIStatusSent      = "sent"
	LOIStatusAccepted  = "accepted"
	LOIStatusRejected  = "rejected"
	LOIStatusConfirmed = "confirmed"
)

// ValidLOITransitions LOI state machine. A rejected LOI may be resent, which
// clears the vendor response date.
var ValidLOITransitions = map[string][]string{
	LOIStatusSent:     {LOIStatusAccepted, LOIStatusRejected},
	LOIStatusRejected: {LOIStatusSent},
	LOIStatusAccepted: {LOIStatusConfirmed},
}
