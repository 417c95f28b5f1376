package entity

import "time"

// CounterQuotation vendor response to a quotation. The action drives the
// initial status and is mirrored onto the parent quotation.
type CounterQuotation struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	CounterCode string `json:"counter_code" gorm:"size:32;uniqueIndex;not null"`
	QuotationID string `json:"quotation_id" gorm:"size:32;not null;index"`
	VendorID    string `json:"vendor_id" gorm:"size:32;not null;index"`

	Action      string  `json:"action" gorm:"size:20;not null"`        // accept/reject/negotiate
	Status      string  `json:"status" gorm:"size:20;default:pending"` // pending/accepted/rejected
	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(15,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Items []CounterQuotationItem `json:"items,omitempty" gorm:"foreignKey:CounterQuotationID"`
}

func (CounterQuotation) TableName() string {
	return "counter_quotations"
}

const (
	CounterActionAccept    = "accept"
	CounterActionReject    = "reject"
	CounterActionNegotiate = "negotiate"
)

const (
	CounterStatusPending  = "pending"
	CounterStatusAccepted = "accepted"
	CounterStatusRejected = "rejected"
)

// ValidCounterTransitions counter-quotation state machine. Only a negotiated
// counter stays pending and awaits the manager's verdict.
var ValidCounterTransitions = map[string][]string{
	CounterStatusPending: {CounterStatusAccepted, CounterStatusRejected},
}

// CounterQuotationItem negotiated line item, same shape as QuotationItem.
type CounterQuotationItem struct {
	ID                 string `json:"id" gorm:"primaryKey;size:32"`
	CounterQuotationID string `json:"counter_quotation_id" gorm:"size:32;not null;index"`
	ComponentID        string `json:"component_id" gorm:"size:32;not null"`

	Quantity        float64 `json:"quantity" gorm:"type:decimal(12,2);not null"`
	Unit            string  `json:"unit" gorm:"size:20;default:pcs"`
	UnitPrice       float64 `json:"unit_price" gorm:"type:decimal(12,4);not null"`
	DiscountPercent float64 `json:"discount_percent" gorm:"type:decimal(5,2);default:0"`
	CGSTPercent     float64 `json:"cgst_percent" gorm:"type:decimal(5,2);default:0"`
	SGSTPercent     float64 `json:"sgst_percent" gorm:"type:decimal(5,2);default:0"`
	LineTotal       float64 `json:"line_total" gorm:"type:decimal(15,2)"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CounterQuotationItem) TableName() string {
	return "counter_quotation_items"
}
