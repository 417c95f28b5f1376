package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// EnquiryHandler purchase enquiries
type EnquiryHandler struct {
	svc *service.EnquiryService
}

func NewEnquiryHandler(svc *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{svc: svc}
}

// ListEnquiries enquiry list. Vendors see only enquiries addressed to them.
// GET /api/v1/enquiries?status=xxx&vendor_id=xxx&search=xxx&page=1&page_size=20
func (h *EnquiryHandler) ListEnquiries(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":    c.Query("status"),
		"vendor_id": c.Query("vendor_id"),
		"search":    c.Query("search"),
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

// GetEnquiry enquiry detail
// GET /api/v1/enquiries/:id
func (h *EnquiryHandler) GetEnquiry(c *gin.Context) {
	enquiry, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && enquiry.VendorID != GetVendorID(c) {
		Forbidden(c, "enquiry belongs to another vendor")
		return
	}
	Success(c, enquiry)
}

// CreateEnquiry new enquiry. Vendors may raise one against themselves.
// POST /api/v1/enquiries
func (h *EnquiryHandler) CreateEnquiry(c *gin.Context) {
	var req service.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if IsVendor(c) {
		req.VendorID = GetVendorID(c)
	}

	enquiry, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, enquiry)
}

// UpdateEnquiry enquiry edit; reopens a rejected enquiry
// PUT /api/v1/enquiries/:id
func (h *EnquiryHandler) UpdateEnquiry(c *gin.Context) {
	var req service.UpdateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	enquiry, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, enquiry)
}

// RejectEnquiry vendor declines to quote
// POST /api/v1/enquiries/:id/reject
func (h *EnquiryHandler) RejectEnquiry(c *gin.Context) {
	var req service.RejectEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	enquiry, err := h.svc.Reject(c.Request.Context(), c.Param("id"), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, enquiry)
}
