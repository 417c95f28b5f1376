package entity

import "time"

// Company buyer-side company record, linked to a vendor on approval.
type Company struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Email     string    `json:"email" gorm:"size:200;index"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:500"`
	GSTIN     string    `json:"gstin" gorm:"size:20"`
	VendorID  *string   `json:"vendor_id" gorm:"size:32;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
