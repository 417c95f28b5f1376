package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/auth"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/service"
)

// Handlers procurement handler set
type Handlers struct {
	Auth      *AuthHandler
	Vendor    *VendorHandler
	Catalog   *CatalogHandler
	Enquiry   *EnquiryHandler
	Quotation *QuotationHandler
	LOI       *LOIHandler
	Order     *OrderHandler
	Invoice   *InvoiceHandler
	Payment   *PaymentHandler
	Analytics *AnalyticsHandler
	Document  *DocumentHandler
}

// NewHandlers creates the procurement handler set
func NewHandlers(svcs *service.Services, authSvc *auth.Service) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(authSvc),
		Vendor:    NewVendorHandler(svcs.Registration),
		Catalog:   NewCatalogHandler(svcs.Catalog),
		Enquiry:   NewEnquiryHandler(svcs.Enquiry),
		Quotation: NewQuotationHandler(svcs.Quotation),
		LOI:       NewLOIHandler(svcs.LOI),
		Order:     NewOrderHandler(svcs.Order, svcs.Export),
		Invoice:   NewInvoiceHandler(svcs.Invoice),
		Payment:   NewPaymentHandler(svcs.Payment),
		Analytics: NewAnalyticsHandler(svcs.Analytics),
		Document:  NewDocumentHandler(svcs.Document),
	}
}

// === response helpers ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// RespondError maps service sentinels onto the response envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetVendorID returns the calling vendor's id, empty for managers.
func GetVendorID(c *gin.Context) string {
	vendorID, _ := c.Get("vendor_id")
	if id, ok := vendorID.(string); ok {
		return id
	}
	return ""
}

func IsVendor(c *gin.Context) bool {
	v, _ := c.Get("is_vendor")
	isVendor, ok := v.(bool)
	return ok && isVendor
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func RespondList(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}
