package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// CatalogHandler companies, products and components
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// === companies ===

// ListCompanies company list
// GET /api/v1/companies?search=xxx&page=1&page_size=20
func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"search": c.Query("search"),
	}

	items, total, err := h.svc.ListCompanies(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondList(c, items, page, pageSize, total)
}

// GetCompany company detail
// GET /api/v1/companies/:id
func (h *CatalogHandler) GetCompany(c *gin.Context) {
	company, err := h.svc.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, company)
}

// UpdateCompany company patch
// PUT /api/v1/companies/:id
func (h *CatalogHandler) UpdateCompany(c *gin.Context) {
	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	company, err := h.svc.UpdateCompany(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, company)
}

// === products ===

// ListProducts product list
// GET /api/v1/products?category=xxx&search=xxx&page=1&page_size=20
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"category": c.Query("category"),
		"search":   c.Query("search"),
	}

	items, total, err := h.svc.ListProducts(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondList(c, items, page, pageSize, total)
}

// GetProduct product detail
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, product)
}

// CreateProduct new product
// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, product)
}

// UpdateProduct product patch
// PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, product)
}

// DeleteProduct remove product
// DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}

// === components ===

// ListComponents component list. Vendors see only their own submissions.
// GET /api/v1/components?review_status=xxx&category=xxx&search=xxx&page=1&page_size=20
func (h *CatalogHandler) ListComponents(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"review_status": c.Query("review_status"),
		"category":      c.Query("category"),
		"search":        c.Query("search"),
		"vendor_id":     c.Query("vendor_id"),
	}
	if IsVendor(c) {
		filters["vendor_id"] = GetVendorID(c)
	}

	items, total, err := h.svc.ListComponents(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondList(c, items, page, pageSize, total)
}

// GetComponent component detail
// GET /api/v1/components/:id
func (h *CatalogHandler) GetComponent(c *gin.Context) {
	component, err := h.svc.GetComponent(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, component)
}

// CreateComponent new component. Vendor submissions start in review.
// POST /api/v1/components
func (h *CatalogHandler) CreateComponent(c *gin.Context) {
	var req service.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var vendorID *string
	if IsVendor(c) {
		id := GetVendorID(c)
		vendorID = &id
	}

	component, err := h.svc.CreateComponent(c.Request.Context(), GetUserID(c), vendorID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, component)
}

// UpdateComponent component patch
// PUT /api/v1/components/:id
func (h *CatalogHandler) UpdateComponent(c *gin.Context) {
	var req service.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var vendorID *string
	if IsVendor(c) {
		id := GetVendorID(c)
		vendorID = &id
	}

	component, err := h.svc.UpdateComponent(c.Request.Context(), c.Param("id"), vendorID, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, component)
}

// ReviewComponent manager review verdict
// POST /api/v1/components/:id/review
func (h *CatalogHandler) ReviewComponent(c *gin.Context) {
	var req service.ReviewComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	component, err := h.svc.ReviewComponent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, component)
}

// DeleteComponent remove component
// DELETE /api/v1/components/:id
func (h *CatalogHandler) DeleteComponent(c *gin.Context) {
	if err := h.svc.DeleteComponent(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
