package entity

import "time"

// VendorInvoice invoice raised by the vendor against a confirmed order.
// One invoice per order, enforced by the unique index on OrderID in addition
// to the service-level pre-check.
type VendorInvoice struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	InvoiceCode string `json:"invoice_code" gorm:"size:32;uniqueIndex;not null"`
	OrderID     string `json:"order_id" gorm:"size:32;not null;uniqueIndex"`
	VendorID    string `json:"vendor_id" gorm:"size:32;not null;index"`

	Subtotal      float64 `json:"subtotal" gorm:"type:decimal(15,2)"`
	TotalDiscount float64 `json:"total_discount" gorm:"type:decimal(15,2)"`
	TotalCGST     float64 `json:"total_cgst" gorm:"type:decimal(15,2)"`
	TotalSGST     float64 `json:"total_sgst" gorm:"type:decimal(15,2)"`
	TotalAmount   float64 `json:"total_amount" gorm:"type:decimal(15,2)"`

	Status        string `json:"status" gorm:"size:20;default:pending"` // pending/received/accepted/rejected/paid
	AttachmentURL string `json:"attachment_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Items []InvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (VendorInvoice) TableName() string {
	return "vendor_invoices"
}

const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusReceived = "received"
	InvoiceStatusAccepted = "accepted"
	InvoiceStatusRejected = "rejected"
	InvoiceStatusPaid     = "paid"
)

// ValidInvoiceTransitions invoice state machine. Paying is allowed from
// received or accepted once the payment ledger covers the total.
var ValidInvoiceTransitions = map[string][]string{
	InvoiceStatusPending:  {InvoiceStatusReceived, InvoiceStatusAccepted, InvoiceStatusRejected},
	InvoiceStatusReceived: {InvoiceStatusAccepted, InvoiceStatusRejected, InvoiceStatusPaid},
	InvoiceStatusAccepted: {InvoiceStatusPaid, InvoiceStatusRejected},
}

// InvoiceItem invoice line item with its tax/discount breakdown stored.
type InvoiceItem struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	InvoiceID   string `json:"invoice_id" gorm:"size:32;not null;index"`
	ComponentID string `json:"component_id" gorm:"size:32;not null"`

	Quantity        float64 `json:"quantity" gorm:"type:decimal(12,2);not null"`
	Unit            string  `json:"unit" gorm:"size:20;default:pcs"`
	UnitPrice       float64 `json:"unit_price" gorm:"type:decimal(12,4);not null"`
	DiscountPercent float64 `json:"discount_percent" gorm:"type:decimal(5,2);default:0"`
	CGSTPercent     float64 `json:"cgst_percent" gorm:"type:decimal(5,2);default:0"`
	SGSTPercent     float64 `json:"sgst_percent" gorm:"type:decimal(5,2);default:0"`

	DiscountAmount float64 `json:"discount_amount" gorm:"type:decimal(15,2)"`
	CGSTAmount     float64 `json:"cgst_amount" gorm:"type:decimal(15,2)"`
	SGSTAmount     float64 `json:"sgst_amount" gorm:"type:decimal(15,2)"`
	LineTotal      float64 `json:"line_total" gorm:"type:decimal(15,2)"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InvoiceItem) TableName() string {
	return "vendor_invoice_items"
}
