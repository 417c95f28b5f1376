package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// OrderHandler purchase orders and the order book export
type OrderHandler struct {
	svc       *service.OrderService
	exportSvc *service.ExportService
}

func NewOrderHandler(svc *service.OrderService, exportSvc *service.ExportService) *OrderHandler {
	return &OrderHandler{svc: svc, exportSvc: exportSvc}
}

// ListOrders order list. Vendors see only their own.
// GET /api/v1/orders?status=xxx&search=xxx&page=1&page_size=20
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":    c.Query("status"),
		"search":    c.Query("search"),
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

// GetOrder order detail
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if IsVendor(c) && order.VendorID != GetVendorID(c) {
		Forbidden(c, "order belongs to another vendor")
		return
	}
	Success(c, order)
}

// CreateOrder manager cuts an order from an accepted LOI
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, order)
}

// UpdateOrderStatus manager status change
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, order)
}

// ConfirmOrder vendor acknowledges a pending order
// POST /api/v1/orders/:id/confirm
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	order, err := h.svc.Confirm(c.Request.Context(), c.Param("id"), GetVendorID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, order)
}

// DeleteOrder remove a pending order
// DELETE /api/v1/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}

// ExportOrders download the filtered order book as xlsx
// GET /api/v1/orders/export?status=xxx&vendor_id=xxx
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	filters := map[string]string{
		"status":    c.Query("status"),
		"vendor_id": c.Query("vendor_id"),
	}
	if IsVendor(c) {
		filters["vendor_id"] = GetVendorID(c)
	}

	f, filename, err := h.exportSvc.ExportOrders(c.Request.Context(), filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
