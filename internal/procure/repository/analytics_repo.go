package repository

import (
	"context"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// AnalyticsRepository read-only rollups over the pipeline tables
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// DashboardMetrics dashboard counters
type DashboardMetrics struct {
	VendorsPending      int64            `json:"vendors_pending"`
	VendorsApproved     int64            `json:"vendors_approved"`
	EnquiriesByStatus   map[string]int64 `json:"enquiries_by_status"`
	QuotationsOpen      int64            `json:"quotations_open"`
	OrdersOpen          int64            `json:"orders_open"`
	OrdersCompleted     int64            `json:"orders_completed"`
	InvoicesUnpaid      int64            `json:"invoices_unpaid"`
	OrderValueTotal     float64          `json:"order_value_total"`
	PaymentsCompleted   float64          `json:"payments_completed"`
	PaymentsOutstanding float64          `json:"payments_outstanding"`
}

// CollectDashboardMetrics runs the count/sum queries for the dashboard.
func (r *AnalyticsRepository) CollectDashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	db := r.db.WithContext(ctx)
	m := &DashboardMetrics{EnquiriesByStatus: map[string]int64{}}

	if err := db.Model(&entity.Vendor{}).Where("status = ?", entity.VendorStatusPending).Count(&m.VendorsPending).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Vendor{}).Where("status = ?", entity.VendorStatusApproved).Count(&m.VendorsApproved).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var enquiryCounts []statusCount
	if err := db.Model(&entity.PurchaseEnquiry{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&enquiryCounts).Error; err != nil {
		return nil, err
	}
	for _, sc := range enquiryCounts {
		m.EnquiriesByStatus[sc.Status] = sc.Count
	}

	if err := db.Model(&entity.PurchaseQuotation{}).
		Where("status IN ?", []string{entity.QuotationStatusSent, entity.QuotationStatusNegotiating}).
		Count(&m.QuotationsOpen).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.PurchaseOrder{}).
		Where("status IN ?", []string{entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusPartiallyReceived}).
		Count(&m.OrdersOpen).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.PurchaseOrder{}).
		Where("status = ?", entity.OrderStatusCompleted).
		Count(&m.OrdersCompleted).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.VendorInvoice{}).
		Where("status <> ? AND status <> ?", entity.InvoiceStatusPaid, entity.InvoiceStatusRejected).
		Count(&m.InvoicesUnpaid).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.PurchaseOrder{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", entity.OrderStatusCancelled).
		Scan(&m.OrderValueTotal).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.PurchasePayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", []string{entity.PaymentStatusCompleted, entity.PaymentStatusReceiptSent}).
		Scan(&m.PaymentsCompleted).Error; err != nil {
		return nil, err
	}
	m.PaymentsOutstanding = m.OrderValueTotal - m.PaymentsCompleted

	return m, nil
}
