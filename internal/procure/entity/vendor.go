package entity

import "time"

// Vendor registered vendor profile. Never hard-deleted: every downstream
// pipeline record references it.
type Vendor struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	VendorCode  string `json:"vendor_code" gorm:"size:32;uniqueIndex;not null"`
	CompanyName string `json:"company_name" gorm:"size:200;not null"`
	ContactName string `json:"contact_name" gorm:"size:100"`
	Email       string `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Phone       string `json:"phone" gorm:"size:50"`
	Address     string `json:"address" gorm:"size:500"`
	GSTIN       string `json:"gstin" gorm:"size:20"`

	Status            string `json:"status" gorm:"size:20;default:pending"`             // pending/approved/rejected
	CertificateStatus string `json:"certificate_status" gorm:"size:20;default:pending"` // pending/approved/rejected
	RejectionReason   string `json:"rejection_reason" gorm:"type:text"`

	CompanyID  *string    `json:"company_id" gorm:"size:32"`
	ApprovedBy *string    `json:"approved_by" gorm:"size:32"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Notes      string     `json:"notes" gorm:"type:text"`
}

func (Vendor) TableName() string {
	return "vendors"
}

const (
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusRejected = "rejected"
)

const (
	CertificateStatusPending  = "pending"
	CertificateStatusApproved = "approved"
	CertificateStatusRejected = "rejected"
)

// ValidVendorTransitions vendor approval state machine. A rejected vendor may
// be re-reviewed.
var ValidVendorTransitions = map[string][]string{
	VendorStatusPending:  {VendorStatusApproved, VendorStatusRejected},
	VendorStatusRejected: {VendorStatusPending, VendorStatusApproved},
	VendorStatusApproved: {VendorStatusRejected},
}
