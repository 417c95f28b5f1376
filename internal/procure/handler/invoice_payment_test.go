package handler

import (
	"net/http"
	"testing"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/service"
	"github.com/procureflow/procureflow/internal/procure/testutil"
)

func setupInvoicePaymentTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	invoiceSvc := service.NewInvoiceService(repos.Invoice, repos.Order, repos.Payment)
	paymentSvc := service.NewPaymentService(repos.Payment, repos.Invoice, repos.Order)
	ih := NewInvoiceHandler(invoiceSvc)
	ph := NewPaymentHandler(paymentSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/invoices", ih.ListInvoices)
	api.GET("/invoices/:id", ih.GetInvoice)
	api.POST("/invoices", ih.CreateInvoice)
	api.PUT("/invoices/:id/status", ih.UpdateInvoiceStatus)
	api.POST("/invoices/:id/paid", ih.MarkInvoicePaid)

	api.GET("/payments", ph.ListPayments)
	api.GET("/payments/:id", ph.GetPayment)
	api.POST("/payments", ph.CreatePayment)
	api.POST("/payments/:id/complete", ph.CompletePayment)
	api.POST("/payments/:id/fail", ph.FailPayment)
	api.POST("/payments/:id/receipt", ph.SendReceipt)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// seedConfirmedOrder seeds a confirmed order with one 100 x 10 line carrying
// a 10% discount and 9% + 9% GST (line total 1062).
func seedConfirmedOrder(t *testing.T, env *testutil.TestEnv, id, vendorID, componentID string) *entity.PurchaseOrder {
	t.Helper()
	order := &entity.PurchaseOrder{
		ID:            id,
		OrderCode:     "ORD-2026-" + id[len(id)-4:],
		LOIID:         "loi-" + id,
		VendorID:      vendorID,
		TotalAmount:   1062,
		AdvanceAmount: 318.6,
		FinalAmount:   743.4,
		Status:        entity.OrderStatusConfirmed,
		CreatedBy:     "test-manager-001",
		Items: []entity.OrderItem{
			{
				ID:              "oi-" + id,
				OrderID:         id,
				ComponentID:     componentID,
				Quantity:        10,
				Unit:            "pcs",
				UnitPrice:       100,
				DiscountPercent: 10,
				CGSTPercent:     9,
				SGSTPercent:     9,
				LineTotal:       1062,
			},
		},
	}
	if err := env.DB.Create(order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

// TestInvoiceCreate tests raising an invoice, its tax breakdown and the
// stock decrement
func TestInvoiceCreate(t *testing.T) {
	env := setupInvoicePaymentTest(t)

	vendor := testutil.SeedVendor(t, env.DB, "vendor-inv-create01", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-inv-create001", 100)
	order := seedConfirmedOrder(t, env, "ord-inv-create0001", vendor.ID, component.ID)
	vendorToken := testutil.VendorToken(vendor.ID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": order.ID,
		"notes":    "first delivery",
	}, vendorToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.InvoiceStatusPending {
		t.Fatalf("expected status pending, got %v", data["status"])
	}
	if got := data["subtotal"].(float64); got != 1000 {
		t.Fatalf("expected subtotal 1000, got %v", got)
	}
	if got := data["total_discount"].(float64); got != 100 {
		t.Fatalf("expected total discount 100, got %v", got)
	}
	if got := data["total_cgst"].(float64); got != 81 {
		t.Fatalf("expected total CGST 81, got %v", got)
	}
	if got := data["total_sgst"].(float64); got != 81 {
		t.Fatalf("expected total SGST 81, got %v", got)
	}
	if got := data["total_amount"].(float64); got != 1062 {
		t.Fatalf("expected total 1062, got %v", got)
	}

	// The invoiced quantity came out of component stock
	var comp entity.Component
	env.DB.Where("id = ?", component.ID).First(&comp)
	if comp.StockAvailable != 90 {
		t.Fatalf("expected stock decremented to 90, got %v", comp.StockAvailable)
	}

	// One invoice per order
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": order.ID,
	}, vendorToken)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate invoice, got %d: %s", w2.Code, w2.Body.String())
	}
}

// TestInvoiceCreateGuards tests the order-status, ownership and stock guards
func TestInvoiceCreateGuards(t *testing.T) {
	env := setupInvoicePaymentTest(t)

	vendor := testutil.SeedVendor(t, env.DB, "vendor-inv-guard001", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-inv-guard0001", 100)

	// Order still pending: not invoiceable
	pendingOrder := seedConfirmedOrder(t, env, "ord-inv-pending001", vendor.ID, component.ID)
	env.DB.Model(&entity.PurchaseOrder{}).Where("id = ?", pendingOrder.ID).
		Update("status", entity.OrderStatusPending)
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": pendingOrder.ID,
	}, testutil.VendorToken(vendor.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unconfirmed order, got %d: %s", w.Code, w.Body.String())
	}

	// Partial delivery does not reopen invoicing
	partialOrder := seedConfirmedOrder(t, env, "ord-inv-partial001", vendor.ID, component.ID)
	env.DB.Model(&entity.PurchaseOrder{}).Where("id = ?", partialOrder.ID).
		Update("status", entity.OrderStatusPartiallyReceived)
	wPartial := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": partialOrder.ID,
	}, testutil.VendorToken(vendor.ID))
	if wPartial.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for partially received order, got %d: %s", wPartial.Code, wPartial.Body.String())
	}

	// Foreign vendor: forbidden
	confirmed := seedConfirmedOrder(t, env, "ord-inv-foreign001", vendor.ID, component.ID)
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": confirmed.ID,
	}, testutil.VendorToken("intruder-vendor-0004"))
	if w2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign order, got %d: %s", w2.Code, w2.Body.String())
	}

	// Stock cannot cover the line: the whole write is rejected
	lowStock := testutil.SeedComponent(t, env.DB, "comp-inv-lowstock1", 5)
	shortOrder := seedConfirmedOrder(t, env, "ord-inv-shortfall1", vendor.ID, lowStock.ID)
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": shortOrder.ID,
	}, testutil.VendorToken(vendor.ID))
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for stock shortfall, got %d: %s", w3.Code, w3.Body.String())
	}

	var count int64
	env.DB.Model(&entity.VendorInvoice{}).Where("order_id = ?", shortOrder.ID).Count(&count)
	if count != 0 {
		t.Fatal("expected no invoice row after the aborted stock decrement")
	}
	var comp entity.Component
	env.DB.Where("id = ?", lowStock.ID).First(&comp)
	if comp.StockAvailable != 5 {
		t.Fatalf("expected stock untouched at 5, got %v", comp.StockAvailable)
	}
}

// TestPaymentLedgerAndCascade walks the full tail of the pipeline: invoice,
// advance and final payments, balance guard, completion cascade
func TestPaymentLedgerAndCascade(t *testing.T) {
	env := setupInvoicePaymentTest(t)
	managerToken := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-pay-cascade1", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-pay-cascade01", 100)
	order := seedConfirmedOrder(t, env, "ord-pay-cascade001", vendor.ID, component.ID)
	vendorToken := testutil.VendorToken(vendor.ID)

	// Paying before any invoice exists is refused
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "advance", "amount": 318.6,
	}, managerToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 before invoice, got %d: %s", w.Code, w.Body.String())
	}

	// Vendor raises the invoice, manager marks it received
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": order.ID,
	}, vendorToken)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	invoiceID := testutil.ParseResponse(w2)["data"].(map[string]interface{})["id"].(string)

	// A pending invoice cannot be paid against either
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "advance", "amount": 318.6,
	}, managerToken)
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for pending invoice, got %d: %s", w3.Code, w3.Body.String())
	}

	w4 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/invoices/"+invoiceID+"/status",
		map[string]interface{}{"status": entity.InvoiceStatusReceived}, managerToken)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}

	// Marking paid with an empty ledger is refused
	w5 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices/"+invoiceID+"/paid", nil, managerToken)
	if w5.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unpaid invoice, got %d: %s", w5.Code, w5.Body.String())
	}

	// Advance payment, completed: order stays open, balance remains
	w6 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "advance", "amount": 318.6, "reference_number": "UTR-ADV-001",
	}, managerToken)
	if w6.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w6.Code, w6.Body.String())
	}
	advanceID := testutil.ParseResponse(w6)["data"].(map[string]interface{})["id"].(string)

	w7 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments/"+advanceID+"/complete", nil, managerToken)
	if w7.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w7.Code, w7.Body.String())
	}
	var ord entity.PurchaseOrder
	env.DB.Where("id = ?", order.ID).First(&ord)
	if ord.Status != entity.OrderStatusConfirmed {
		t.Fatalf("expected order still confirmed after partial payment, got %s", ord.Status)
	}

	// Overpaying the remaining balance is refused
	w8 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "final", "amount": 800,
	}, managerToken)
	if w8.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overpayment, got %d: %s", w8.Code, w8.Body.String())
	}

	// Final payment for the exact balance, completed: the cascade closes
	// the order and pays the invoice
	w9 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "final", "amount": 743.4, "reference_number": "UTR-FIN-001",
	}, managerToken)
	if w9.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w9.Code, w9.Body.String())
	}
	finalID := testutil.ParseResponse(w9)["data"].(map[string]interface{})["id"].(string)

	w10 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments/"+finalID+"/complete", nil, managerToken)
	if w10.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w10.Code, w10.Body.String())
	}
	data10 := testutil.ParseResponse(w10)["data"].(map[string]interface{})
	if data10["status"] != entity.PaymentStatusCompleted {
		t.Fatalf("expected payment completed, got %v", data10["status"])
	}
	if data10["payment_date"] == nil {
		t.Fatal("expected payment_date stamped on completion")
	}

	env.DB.Where("id = ?", order.ID).First(&ord)
	if ord.Status != entity.OrderStatusCompleted {
		t.Fatalf("expected order completed after full payment, got %s", ord.Status)
	}
	var inv entity.VendorInvoice
	env.DB.Where("id = ?", invoiceID).First(&inv)
	if inv.Status != entity.InvoiceStatusPaid {
		t.Fatalf("expected invoice paid after full payment, got %s", inv.Status)
	}

	// Only the owning vendor can send the receipt for the completed payment
	wForeign := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments/"+finalID+"/receipt",
		map[string]interface{}{"receipt_url": "https://files.test/receipts/fin-001.pdf"}, testutil.VendorToken("intruder-vendor-0009"))
	if wForeign.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign vendor receipt, got %d: %s", wForeign.Code, wForeign.Body.String())
	}
	w11 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments/"+finalID+"/receipt",
		map[string]interface{}{"receipt_url": "https://files.test/receipts/fin-001.pdf"}, vendorToken)
	if w11.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w11.Code, w11.Body.String())
	}
	data11 := testutil.ParseResponse(w11)["data"].(map[string]interface{})
	if data11["status"] != entity.PaymentStatusReceiptSent {
		t.Fatalf("expected status receipt_sent, got %v", data11["status"])
	}
}

// TestPaymentOrderStatusGate tests that only confirmed or completed orders
// accept payments
func TestPaymentOrderStatusGate(t *testing.T) {
	env := setupInvoicePaymentTest(t)
	managerToken := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-pay-gate001", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-pay-gate00001", 100)
	order := seedConfirmedOrder(t, env, "ord-pay-gate000001", vendor.ID, component.ID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": order.ID,
	}, testutil.VendorToken(vendor.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	invoiceID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
	testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/invoices/"+invoiceID+"/status",
		map[string]interface{}{"status": entity.InvoiceStatusAccepted}, managerToken)

	// A cancelled order takes no payments even with an accepted invoice
	env.DB.Model(&entity.PurchaseOrder{}).Where("id = ?", order.ID).
		Update("status", entity.OrderStatusCancelled)
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "advance", "amount": 318.6,
	}, managerToken)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for cancelled order, got %d: %s", w2.Code, w2.Body.String())
	}

	// A missing order is a 404
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": "no-such-order-00001", "phase": "advance", "amount": 100,
	}, managerToken)
	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing order, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestPaymentFailReleasesBalance tests that failed payments drop out of the
// paid sum
func TestPaymentFailReleasesBalance(t *testing.T) {
	env := setupInvoicePaymentTest(t)
	managerToken := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-pay-fail001", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-pay-fail00001", 100)
	order := seedConfirmedOrder(t, env, "ord-pay-fail000001", vendor.ID, component.ID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"order_id": order.ID,
	}, testutil.VendorToken(vendor.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	invoiceID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
	testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/invoices/"+invoiceID+"/status",
		map[string]interface{}{"status": entity.InvoiceStatusAccepted}, managerToken)

	// Book the full amount, then fail it
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "final", "amount": 1062,
	}, managerToken)
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	paymentID := testutil.ParseResponse(w2)["data"].(map[string]interface{})["id"].(string)

	// While the first payment is pending the balance is spoken for
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "final", "amount": 1062,
	}, managerToken)
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 while balance is reserved, got %d: %s", w3.Code, w3.Body.String())
	}

	w4 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments/"+paymentID+"/fail",
		map[string]interface{}{"reason": "bank bounced the transfer"}, managerToken)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	data4 := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if data4["status"] != entity.PaymentStatusFailed {
		t.Fatalf("expected status failed, got %v", data4["status"])
	}

	// The balance is free again
	w5 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"order_id": order.ID, "phase": "final", "amount": 1062,
	}, managerToken)
	if w5.Code != http.StatusCreated {
		t.Fatalf("expected 201 after failing the first payment, got %d: %s", w5.Code, w5.Body.String())
	}

	// A failed payment cannot be completed
	w6 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/payments/"+paymentID+"/complete", nil, managerToken)
	if w6.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for completing a failed payment, got %d: %s", w6.Code, w6.Body.String())
	}
}
