package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// LOIHandler letters of intent
type LOIHandler struct {
	svc *service.LOIService
}

func NewLOIHandler(svc *service.LOIService) *LOIHandler {
	return &LOIHandler{svc: svc}
}

// ListLOIs LOI list. Vendors see only their own.
// GET /api/v1/lois?status=xxx&quotation_id=xxx&page=1&page_size=20
func (h *LOIHandler) ListLOIs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":       c.Query("status"),
		"quotation_id": c.Query("quotation_id"),
		"vendor_id":    c.Query("vendor_id"),
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

// GetLOI LOI detail
// GET /api/v1/lois/:id
func (h *LOIHandler) GetLOI(c *gin.Context) {
	loi, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && loi.VendorID != GetVendorID(c) {
		Forbidden(c, "LOI belongs to another vendor")
		return
	}
	Success(c, loi)
}

// CreateLOI manager issues an LOI against an accepted quotation
// POST /api/v1/lois
func (h *LOIHandler) CreateLOI(c *gin.Context) {
	var req service.CreateLOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	loi, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, loi)
}

// RespondLOI vendor accepts or rejects
// POST /api/v1/lois/:id/respond
func (h *LOIHandler) RespondLOI(c *gin.Context) {
	var req service.RespondLOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	loi, err := h.svc.Respond(c.Request.Context(), c.Param("id"), GetVendorID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, loi)
}

// UpdateLOI manager patch; resending clears the vendor response
// PUT /api/v1/lois/:id
func (h *LOIHandler) UpdateLOI(c *gin.Context) {
	var req service.UpdateLOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	loi, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, loi)
}
