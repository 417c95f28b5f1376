package auth

import "time"

// User credential row. Vendors and purchase managers share the table and are
// distinguished by Role; login resolves vendor credentials before manager
// ones.
type User struct {
	ID           string  `json:"id" gorm:"primaryKey;size:32"`
	Email        string  `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Name         string  `json:"name" gorm:"size:100"`
	PasswordHash *string `json:"-" gorm:"size:100"`
	Role         string  `json:"role" gorm:"size:20;not null"` // manager/vendor
	VendorID     *string `json:"vendor_id" gorm:"size:32;index"`
	Status       string  `json:"status" gorm:"size:20;default:active"` // active/disabled
	SetupToken   *string `json:"-" gorm:"size:64;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "auth_users"
}

const (
	RoleManager = "manager"
	RoleVendor  = "vendor"
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
