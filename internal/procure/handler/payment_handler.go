package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// PaymentHandler payment ledger
type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// ListPayments payment list. Vendors see only their own.
// GET /api/v1/payments?order_id=xxx&status=xxx&phase=xxx&page=1&page_size=20
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"order_id":  c.Query("order_id"),
		"status":    c.Query("status"),
		"phase":     c.Query("phase"),
		"vendor_id": c.Query("vendor_id"),
	}
	if IsVendor(c) {
		filters["vendor_id"] = GetVendorID(c)
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondList(c, items, page, pageSize, total)
}

// GetPayment payment detail
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && payment.VendorID != GetVendorID(c) {
		Forbidden(c, "payment belongs to another vendor")
		return
	}
	Success(c, payment)
}

// CreatePayment manager records a payment against an invoiced order
// POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	payment, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, payment)
}

// CompletePayment mark completed; cascades order/invoice when fully paid
// POST /api/v1/payments/:id/complete
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	payment, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, payment)
}

// FailPayment mark failed
// POST /api/v1/payments/:id/fail
func (h *PaymentHandler) FailPayment(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	// body is optional
	_ = c.ShouldBindJSON(&req)

	payment, err := h.svc.Fail(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, payment)
}

// SendReceipt vendor records that the receipt went out
// POST /api/v1/payments/:id/receipt
func (h *PaymentHandler) SendReceipt(c *gin.Context) {
	var req service.SendReceiptRequest
	_ = c.ShouldBindJSON(&req)

	payment, err := h.svc.SendReceipt(c.Request.Context(), c.Param("id"), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, payment)
}
