package entity

import "time"

// Component purchasable component. Vendor-submitted components go through a
// review before they can be quoted or invoiced; StockAvailable is decremented
// when an invoice is raised against them.
type Component struct {
	ID            string   `json:"id" gorm:"primaryKey;size:32"`
	Code          string   `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name          string   `json:"name" gorm:"size:200;not null"`
	Specification string   `json:"specification" gorm:"size:500"`
	Category      string   `json:"category" gorm:"size:100"`
	Unit          string   `json:"unit" gorm:"size:20;default:pcs"`
	UnitPrice     *float64 `json:"unit_price" gorm:"type:decimal(12,4)"`

	VendorID       *string `json:"vendor_id" gorm:"size:32;index"`
	StockAvailable float64 `json:"stock_available" gorm:"type:decimal(12,2);default:0"`

	ReviewStatus string `json:"review_status" gorm:"size:20;default:pending"` // pending/approved/rejected
	ReviewNotes  string `json:"review_notes" gorm:"type:text"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Component) TableName() string {
	return "components"
}

const (
	ComponentReviewPending  = "pending"
	ComponentReviewApproved = "approved"
	ComponentReviewRejected = "rejected"
)

// ValidComponentReviewTransitions component review state machine.
var ValidComponentReviewTransitions = map[string][]string{
	ComponentReviewPending:  {ComponentReviewApproved, ComponentReviewRejected},
	ComponentReviewRejected: {ComponentReviewPending},
}
