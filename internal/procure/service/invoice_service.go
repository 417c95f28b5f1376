package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
)

// InvoiceService vendor invoices. An invoice mirrors its order's line items,
// stores the full discount/tax breakdown and decrements component stock when
// it is raised.
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	orderRepo   *repository.OrderRepository
	paymentRepo *repository.PaymentRepository
}

func NewInvoiceService(invoiceRepo *repository.InvoiceRepository, orderRepo *repository.OrderRepository, paymentRepo *repository.PaymentRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.VendorInvoice, int64, error) {
	return s.invoiceRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.VendorInvoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// CreateInvoiceRequest vendor invoice against a confirmed order
type CreateInvoiceRequest struct {
	OrderID       string `json:"order_id" binding:"required"`
	AttachmentURL string `json:"attachment_url"`
	Notes         string `json:"notes"`
}

// Create raises the invoice. Pre-checks: the order belongs to the calling
// vendor, is confirmed, and has no invoice yet; the stock decrement inside
// the repository transaction rejects any line the stock cannot cover.
func (s *InvoiceService) Create(ctx context.Context, vendorID string, req *CreateInvoiceRequest) (*entity.VendorInvoice, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, fmt.Errorf("%w: order belongs to another vendor", ErrForbidden)
	}
	if order.Status != entity.OrderStatusConfirmed {
		return nil, fmt.Errorf("%w: order in status %s cannot be invoiced", ErrValidation, order.Status)
	}

	if existing, err := s.invoiceRepo.FindByOrderID(ctx, order.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: order already has invoice %s", ErrValidation, existing.InvoiceCode)
	}

	code, err := s.invoiceRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.VendorInvoice{
		ID:            uuid.New().String()[:32],
		InvoiceCode:   code,
		OrderID:       order.ID,
		VendorID:      vendorID,
		Status:        entity.InvoiceStatusPending,
		AttachmentURL: req.AttachmentURL,
		Notes:         req.Notes,
	}

	var subtotal, totalDiscount, totalCGST, totalSGST, totalAmount float64
	for i, oi := range order.Items {
		gross := oi.UnitPrice * oi.Quantity
		discountAmount := Round2(gross * oi.DiscountPercent / 100)
		discounted := gross * (1 - oi.DiscountPercent/100)
		cgstAmount := Round2(discounted * oi.CGSTPercent / 100)
		sgstAmount := Round2(discounted * oi.SGSTPercent / 100)
		lineTotal := LineTotal(oi.UnitPrice, oi.Quantity, oi.DiscountPercent, oi.CGSTPercent, oi.SGSTPercent)

		subtotal += gross
		totalDiscount += discountAmount
		totalCGST += cgstAmount
		totalSGST += sgstAmount
		totalAmount += lineTotal

		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ID:              uuid.New().String()[:32],
			InvoiceID:       invoice.ID,
			ComponentID:     oi.ComponentID,
			Quantity:        oi.Quantity,
			Unit:            oi.Unit,
			UnitPrice:       oi.UnitPrice,
			DiscountPercent: oi.DiscountPercent,
			CGSTPercent:     oi.CGSTPercent,
			SGSTPercent:     oi.SGSTPercent,
			DiscountAmount:  discountAmount,
			CGSTAmount:      cgstAmount,
			SGSTAmount:      sgstAmount,
			LineTotal:       lineTotal,
			SortOrder:       i,
		})
	}
	invoice.Subtotal = Round2(subtotal)
	invoice.TotalDiscount = Round2(totalDiscount)
	invoice.TotalCGST = Round2(totalCGST)
	invoice.TotalSGST = Round2(totalSGST)
	invoice.TotalAmount = Round2(totalAmount)

	if err := s.invoiceRepo.CreateWithStockDecrement(ctx, invoice); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}
	return s.invoiceRepo.FindByID(ctx, invoice.ID)
}

// UpdateInvoiceStatusRequest manager verdict on a submitted invoice
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"` // received/accepted/rejected
	Notes  string `json:"notes"`
}

func (s *InvoiceService) UpdateStatus(ctx context.Context, id string, req *UpdateInvoiceStatusRequest) (*entity.VendorInvoice, error) {
	switch req.Status {
	case entity.InvoiceStatusReceived, entity.InvoiceStatusAccepted, entity.InvoiceStatusRejected:
	default:
		return nil, fmt.Errorf("%w: invalid invoice status %q", ErrValidation, req.Status)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidInvoiceTransitions, invoice.Status, req.Status) {
		return nil, fmt.Errorf("%w: invoice in status %s cannot move to %s", ErrValidation, invoice.Status, req.Status)
	}

	invoice.Status = req.Status
	if req.Notes != "" {
		invoice.Notes = req.Notes
	}
	invoice.Items = nil
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindByID(ctx, invoice.ID)
}

// MarkPaid flips the invoice to paid once the payment ledger covers the
// total within tolerance.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*entity.VendorInvoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidInvoiceTransitions, invoice.Status, entity.InvoiceStatusPaid) {
		return nil, fmt.Errorf("%w: invoice in status %s cannot be marked paid", ErrValidation, invoice.Status)
	}

	paid, err := s.paymentRepo.SumNonFailedByOrder(ctx, invoice.OrderID)
	if err != nil {
		return nil, err
	}
	if invoice.TotalAmount-paid > PaymentTolerance {
		return nil, fmt.Errorf("%w: invoice total %.2f exceeds payments received %.2f", ErrValidation, invoice.TotalAmount, paid)
	}

	invoice.Status = entity.InvoiceStatusPaid
	invoice.Items = nil
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindByID(ctx, invoice.ID)
}
