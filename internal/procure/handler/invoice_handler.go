package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// InvoiceHandler vendor invoices
type InvoiceHandler struct {
	svc *service.InvoiceService
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// ListInvoices invoice list. Vendors see only their own.
// GET /api/v1/invoices?status=xxx&order_id=xxx&page=1&page_size=20
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":    c.Query("status"),
		"order_id":  c.Query("order_id"),
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

// GetInvoice invoice detail
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && invoice.VendorID != GetVendorID(c) {
		Forbidden(c, "invoice belongs to another vendor")
		return
	}
	Success(c, invoice)
}

// CreateInvoice vendor raises an invoice against a confirmed order
// POST /api/v1/invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invoice, err := h.svc.Create(c.Request.Context(), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, invoice)
}

// UpdateInvoiceStatus manager verdict (received/accepted/rejected)
// PUT /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	var req service.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invoice, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, invoice)
}

// MarkInvoicePaid flip to paid once the ledger covers the total
// POST /api/v1/invoices/:id/paid
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	invoice, err := h.svc.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, invoice)
}
