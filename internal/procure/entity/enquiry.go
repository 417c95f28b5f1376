package entity

import "time"

// PurchaseEnquiry RFQ raised against a vendor for specific components.
type PurchaseEnquiry struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	EnquiryCode string `json:"enquiry_code" gorm:"size:32;uniqueIndex;not null"`
	VendorID    string `json:"vendor_id" gorm:"size:32;not null;index"`
	RequestedBy string `json:"requested_by" gorm:"size:32"`

	Status          string `json:"status" gorm:"size:20;default:pending"` // pending/quoted/rejected
	RejectionReason string `json:"rejection_reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Items  []EnquiryItem `json:"items,omitempty" gorm:"foreignKey:EnquiryID"`
	Vendor *Vendor       `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (PurchaseEnquiry) TableName() string {
	return "purchase_enquiries"
}

const (
	EnquiryStatusPending  = "pending"
	EnquiryStatusQuoted   = "quoted"
	EnquiryStatusRejected = "rejected"
)

// ValidEnquiryTransitions enquiry state machine. A rejected enquiry reopens
// to pending when it is edited (resubmission).
var ValidEnquiryTransitions = map[string][]string{
	EnquiryStatusPending:  {EnquiryStatusQuoted, EnquiryStatusRejected},
	EnquiryStatusRejected: {EnquiryStatusPending},
}

// EnquiryItem enquiry line item.
type EnquiryItem struct {
	ID            string  `json:"id" gorm:"primaryKey;size:32"`
	EnquiryID     string  `json:"enquiry_id" gorm:"size:32;not null;index"`
	ComponentID   string  `json:"component_id" gorm:"size:32;not null"`
	Quantity      float64 `json:"quantity" gorm:"type:decimal(12,2);not null"`
	Unit          string  `json:"unit" gorm:"size:20;default:pcs"`
	Specification string  `json:"specification" gorm:"size:500"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EnquiryItem) TableName() string {
	return "purchase_enquiry_items"
}
