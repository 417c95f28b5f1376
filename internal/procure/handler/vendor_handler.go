package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// VendorHandler vendor registration review
type VendorHandler struct {
	svc *service.RegistrationService
}

func NewVendorHandler(svc *service.RegistrationService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

// ListVendors vendor list
// GET /api/v1/vendors?status=xxx&search=xxx&page=1&page_size=20
func (h *VendorHandler) ListVendors(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status": c.Query("status"),
		"search": c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondList(c, items, page, pageSize, total)
}

// GetVendor vendor detail. Vendors can only read their own profile.
// GET /api/v1/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id := c.Param("id")
	if IsVendor(c) && GetVendorID(c) != id {
		Forbidden(c, "cannot access another vendor's profile")
		return
	}

	vendor, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, vendor)
}

// UpdateVendor profile patch
// PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id := c.Param("id")
	if IsVendor(c) && GetVendorID(c) != id {
		Forbidden(c, "cannot edit another vendor's profile")
		return
	}

	var req service.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, vendor)
}

// ApproveVendor manager approval
// POST /api/v1/vendors/:id/approve
func (h *VendorHandler) ApproveVendor(c *gin.Context) {
	vendor, err := h.svc.Approve(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, vendor)
}

// RejectVendor manager rejection
// POST /api/v1/vendors/:id/reject
func (h *VendorHandler) RejectVendor(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, vendor)
}

// UpdateCertificate certificate review verdict
// PUT /api/v1/vendors/:id/certificate
func (h *VendorHandler) UpdateCertificate(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.UpdateCertificateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, vendor)
}
