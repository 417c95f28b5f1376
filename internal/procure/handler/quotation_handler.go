package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// QuotationHandler quotations and counter-quotations
type QuotationHandler struct {
	svc *service.QuotationService
}

func NewQuotationHandler(svc *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{svc: svc}
}

// ListQuotations quotation list. Vendors see only their own.
// GET /api/v1/quotations?status=xxx&enquiry_id=xxx&page=1&page_size=20
func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":     c.Query("status"),
		"enquiry_id": c.Query("enquiry_id"),
		"vendor_id":  c.Query("vendor_id"),
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

// GetQuotation quotation detail
// GET /api/v1/quotations/:id
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	quotation, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && quotation.VendorID != GetVendorID(c) {
		Forbidden(c, "quotation belongs to another vendor")
		return
	}
	Success(c, quotation)
}

// CreateQuotation vendor quotes a pending enquiry
// POST /api/v1/quotations
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	quotation, err := h.svc.Create(c.Request.Context(), GetUserID(c), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, quotation)
}

// UpdateQuotation vendor patch while sent or negotiating
// PUT /api/v1/quotations/:id
func (h *QuotationHandler) UpdateQuotation(c *gin.Context) {
	var req service.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	quotation, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quotation)
}

// === counter-quotations ===

// ListCounters counters for a quotation
// GET /api/v1/quotations/:id/counters
func (h *QuotationHandler) ListCounters(c *gin.Context) {
	counters, err := h.svc.ListCounters(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": counters})
}

// CreateCounter vendor accepts, rejects or renegotiates a quotation
// POST /api/v1/quotations/:id/counters
func (h *QuotationHandler) CreateCounter(c *gin.Context) {
	var req service.CreateCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	counter, err := h.svc.CreateCounter(c.Request.Context(), c.Param("id"), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, counter)
}

// GetCounter counter detail
// GET /api/v1/counter-quotations/:id
func (h *QuotationHandler) GetCounter(c *gin.Context) {
	counter, err := h.svc.GetCounter(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && counter.VendorID != GetVendorID(c) {
		Forbidden(c, "counter-quotation belongs to another vendor")
		return
	}
	Success(c, counter)
}

// DecideCounter manager settles a negotiated counter
// POST /api/v1/counter-quotations/:id/decide
func (h *QuotationHandler) DecideCounter(c *gin.Context) {
	var req service.DecideCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	counter, err := h.svc.DecideCounter(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, counter)
}
