package entity

import "time"

// PurchaseQuotation quotation issued against an enquiry. Advance and final
// payment percentages always sum to 100.
type PurchaseQuotation struct {
	ID            string `json:"id" gorm:"primaryKey;size:32"`
	QuotationCode string `json:"quotation_code" gorm:"size:32;uniqueIndex;not null"`
	EnquiryID     string `json:"enquiry_id" gorm:"size:32;not null;index"`
	VendorID      string `json:"vendor_id" gorm:"size:32;not null;index"`

	TotalAmount           float64 `json:"total_amount" gorm:"type:decimal(15,2)"`
	AdvancePaymentPercent float64 `json:"advance_payment_percent" gorm:"type:decimal(5,2);default:0"`
	FinalPaymentPercent   float64 `json:"final_payment_percent" gorm:"type:decimal(5,2);default:100"`

	Status string `json:"status" gorm:"size:20;default:sent"` // sent/negotiating/accepted/rejected/approved

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Items  []QuotationItem `json:"items,omitempty" gorm:"foreignKey:QuotationID"`
	Vendor *Vendor         `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (PurchaseQuotation) TableName() string {
	return "purchase_quotations"
}

const (
	QuotationStatusSent        = "sent"
	QuotationStatusNegotiating = "negotiating"
	QuotationStatusAccepted    = "accepted"
	QuotationStatusRejected    = "rejected"
	QuotationStatusApproved    = "approved" // an LOI has been issued against it
)

// ValidQuotationTransitions quotation state machine.
var ValidQuotationTransitions = map[string][]string{
	QuotationStatusSent:        {QuotationStatusNegotiating, QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusApproved},
	QuotationStatusNegotiating: {QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusApproved},
	QuotationStatusAccepted:    {QuotationStatusApproved},
}

// QuotationItem quotation line item. LineTotal applies the discount before
// CGST/SGST.
type QuotationItem struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	QuotationID string `json:"quotation_id" gorm:"size:32;not null;index"`
	ComponentID string `json:"component_id" gorm:"size:32;not null"`

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

func (QuotationItem) TableName() string {
	return "purchase_quotation_items"
}
