package service

import (
	"context"
	"math"
	"testing"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/testutil"
)

// TestAnalyticsDashboard tests the pipeline rollups without a cache
func TestAnalyticsDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewAnalyticsService(repos.Analytics, nil)

	testutil.SeedVendor(t, db, "vendor-dash-pend001", entity.VendorStatusPending)
	approved := testutil.SeedVendor(t, db, "vendor-dash-appr01", entity.VendorStatusApproved)

	enquiries := []entity.PurchaseEnquiry{
		{ID: "enq-dash-00000001", EnquiryCode: "ENQ-2026-9001", VendorID: approved.ID, Status: entity.EnquiryStatusPending},
		{ID: "enq-dash-00000002", EnquiryCode: "ENQ-2026-9002", VendorID: approved.ID, Status: entity.EnquiryStatusQuoted},
	}
	for i := range enquiries {
		if err := db.Create(&enquiries[i]).Error; err != nil {
			t.Fatalf("Failed to seed enquiry: %v", err)
		}
	}

	quotation := entity.PurchaseQuotation{
		ID: "quo-dash-00000001", QuotationCode: "QUO-2026-9001",
		EnquiryID: "enq-dash-00000002", VendorID: approved.ID,
		TotalAmount: 1062, Status: entity.QuotationStatusSent,
	}
	if err := db.Create(&quotation).Error; err != nil {
		t.Fatalf("Failed to seed quotation: %v", err)
	}

	orders := []entity.PurchaseOrder{
		{ID: "ord-dash-00000001", OrderCode: "ORD-2026-9001", LOIID: "loi-1", VendorID: approved.ID, TotalAmount: 1062, Status: entity.OrderStatusConfirmed},
		{ID: "ord-dash-00000002", OrderCode: "ORD-2026-9002", LOIID: "loi-2", VendorID: approved.ID, TotalAmount: 500, Status: entity.OrderStatusCompleted},
		{ID: "ord-dash-00000003", OrderCode: "ORD-2026-9003", LOIID: "loi-3", VendorID: approved.ID, TotalAmount: 100, Status: entity.OrderStatusCancelled},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("Failed to seed order: %v", err)
		}
	}

	invoice := entity.VendorInvoice{
		ID: "inv-dash-00000001", InvoiceCode: "INV-2026-9001",
		OrderID: "ord-dash-00000001", VendorID: approved.ID,
		TotalAmount: 1062, Status: entity.InvoiceStatusReceived,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("Failed to seed invoice: %v", err)
	}

	payments := []entity.PurchasePayment{
		{ID: "pay-dash-00000001", PaymentCode: "PAY-2026-9001", OrderID: "ord-dash-00000001", InvoiceID: invoice.ID, VendorID: approved.ID, Phase: entity.PaymentPhaseAdvance, Amount: 318.6, Status: entity.PaymentStatusCompleted},
		{ID: "pay-dash-00000002", PaymentCode: "PAY-2026-9002", OrderID: "ord-dash-00000001", InvoiceID: invoice.ID, VendorID: approved.ID, Phase: entity.PaymentPhaseFinal, Amount: 743.4, Status: entity.PaymentStatusFailed},
	}
	for i := range payments {
		if err := db.Create(&payments[i]).Error; err != nil {
			t.Fatalf("Failed to seed payment: %v", err)
		}
	}

	m, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if m.VendorsPending != 1 || m.VendorsApproved != 1 {
		t.Fatalf("expected 1 pending / 1 approved vendor, got %d/%d", m.VendorsPending, m.VendorsApproved)
	}
	if m.EnquiriesByStatus[entity.EnquiryStatusPending] != 1 || m.EnquiriesByStatus[entity.EnquiryStatusQuoted] != 1 {
		t.Fatalf("unexpected enquiry rollup: %v", m.EnquiriesByStatus)
	}
	if m.QuotationsOpen != 1 {
		t.Fatalf("expected 1 open quotation, got %d", m.QuotationsOpen)
	}
	if m.OrdersOpen != 1 || m.OrdersCompleted != 1 {
		t.Fatalf("expected 1 open / 1 completed order, got %d/%d", m.OrdersOpen, m.OrdersCompleted)
	}
	if m.InvoicesUnpaid != 1 {
		t.Fatalf("expected 1 unpaid invoice, got %d", m.InvoicesUnpaid)
	}
	// Cancelled orders stay out of the order book value
	if math.Abs(m.OrderValueTotal-1562) > 1e-9 {
		t.Fatalf("expected order value 1562, got %v", m.OrderValueTotal)
	}
	// Failed payments do not count as completed
	if math.Abs(m.PaymentsCompleted-318.6) > 1e-9 {
		t.Fatalf("expected completed payments 318.60, got %v", m.PaymentsCompleted)
	}
	if math.Abs(m.PaymentsOutstanding-1243.4) > 1e-9 {
		t.Fatalf("expected outstanding 1243.40, got %v", m.PaymentsOutstanding)
	}
}
