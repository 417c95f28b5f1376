package entity

import "time"

// PurchaseOrder order created from an accepted LOI. Advance and final amounts
// are derived from the LOI's payment split at creation time.
type PurchaseOrder struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	OrderCode string `json:"order_code" gorm:"size:32;uniqueIndex;not null"`
	LOIID     string `json:"loi_id" gorm:"size:32;not null;index"`
	VendorID  string `json:"vendor_id" gorm:"size:32;not null;index"`

	TotalAmount   float64 `json:"total_amount" gorm:"type:decimal(15,2)"`
	AdvanceAmount float64 `json:"advance_amount" gorm:"type:decimal(15,2)"`
	FinalAmount   float64 `json:"final_amount" gorm:"type:decimal(15,2)"`

	Status string `json:"status" gorm:"size:20;default:pending"` // pending/confirmed/partially_received/completed/cancelled

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Items  []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Vendor *Vendor     `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

const (
	OrderStatusPending           = "pending"
	OrderStatusConfirmed         = "confirmed"
	OrderStatusPartiallyReceived = "partially_received"
	OrderStatusCompleted         = "completed"
	OrderStatusCancelled         = "cancelled"
)

// ValidOrderTransitions order state machine.
var ValidOrderTransitions = map[string][]string{
	OrderStatusPending:           {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:         {OrderStatusPartiallyReceived, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusPartiallyReceived: {OrderStatusCompleted, OrderStatusCancelled},
}

// OrderItem order line item, priced with the same formula as quotation items.
type OrderItem struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	OrderID     string `json:"order_id" gorm:"size:32;not null;index"`
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

func (OrderItem) TableName() string {
	return "purchase_order_items"
}
