package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
)

// PaymentService payment ledger against invoiced orders. A new payment may
// never push the non-failed total past the invoice amount plus tolerance;
// completing the covering payment cascades the order and invoice closed.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	invoiceRepo *repository.InvoiceRepository
	orderRepo   *repository.OrderRepository
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, invoiceRepo *repository.InvoiceRepository, orderRepo *repository.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
	}
}

func (s *PaymentService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchasePayment, int64, error) {
	return s.paymentRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *PaymentService) Get(ctx context.Context, id string) (*entity.PurchasePayment, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

// CreatePaymentRequest new ledger entry
type CreatePaymentRequest struct {
	OrderID         string  `json:"order_id" binding:"required"`
	Phase           string  `json:"phase" binding:"required"` // advance/final
	Amount          float64 `json:"amount" binding:"required"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
}

func (s *PaymentService) Create(ctx context.Context, userID string, req *CreatePaymentRequest) (*entity.PurchasePayment, error) {
	if req.Phase != entity.PaymentPhaseAdvance && req.Phase != entity.PaymentPhaseFinal {
		return nil, fmt.Errorf("%w: invalid payment phase %q", ErrValidation, req.Phase)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusConfirmed && order.Status != entity.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: order in status %s cannot be paid against", ErrValidation, order.Status)
	}

	invoice, err := s.invoiceRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, fmt.Errorf("%w: order has no invoice yet", ErrValidation)
	}
	switch invoice.Status {
	case entity.InvoiceStatusReceived, entity.InvoiceStatusAccepted:
	default:
		return nil, fmt.Errorf("%w: invoice in status %s cannot be paid against", ErrValidation, invoice.Status)
	}

	paid, err := s.paymentRepo.SumNonFailedByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if paid+req.Amount > invoice.TotalAmount+PaymentTolerance {
		return nil, fmt.Errorf("%w: payment of %.2f exceeds remaining balance %.2f", ErrValidation, req.Amount, invoice.TotalAmount-paid)
	}

	code, err := s.paymentRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	payment := &entity.PurchasePayment{
		ID:              uuid.New().String()[:32],
		PaymentCode:     code,
		OrderID:         order.ID,
		InvoiceID:       invoice.ID,
		VendorID:        order.VendorID,
		Phase:           req.Phase,
		Amount:          Round2(req.Amount),
		Status:          entity.PaymentStatusPending,
		ReferenceNumber: req.ReferenceNumber,
		CreatedBy:       userID,
		Notes:           req.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Complete marks the payment completed. When the ledger now covers the
// invoice within tolerance, the order closes and the invoice flips to paid
// in the same transaction.
func (s *PaymentService) Complete(ctx context.Context, id string) (*entity.PurchasePayment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidPaymentTransitions, payment.Status, entity.PaymentStatusCompleted) {
		return nil, fmt.Errorf("%w: payment in status %s cannot be completed", ErrValidation, payment.Status)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.paymentRepo.CompleteWithCascade(ctx, payment, invoice.TotalAmount, PaymentTolerance); err != nil {
		return nil, err
	}
	return payment, nil
}

// Fail marks the payment failed; failed amounts drop out of the paid sum so
// the balance can be re-paid.
func (s *PaymentService) Fail(ctx context.Context, id, reason string) (*entity.PurchasePayment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidPaymentTransitions, payment.Status, entity.PaymentStatusFailed) {
		return nil, fmt.Errorf("%w: payment in status %s cannot be failed", ErrValidation, payment.Status)
	}

	payment.Status = entity.PaymentStatusFailed
	if reason != "" {
		payment.Notes = reason
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// SendReceiptRequest receipt dispatch
type SendReceiptRequest struct {
	ReceiptURL string `json:"receipt_url"`
}

// SendReceipt records the vendor's receipt for a completed payment.
func (s *PaymentService) SendReceipt(ctx context.Context, id, vendorID string, req *SendReceiptRequest) (*entity.PurchasePayment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.VendorID != vendorID {
		return nil, fmt.Errorf("%w: payment belongs to another vendor", ErrForbidden)
	}
	if !entity.CanTransition(entity.ValidPaymentTransitions, payment.Status, entity.PaymentStatusReceiptSent) {
		return nil, fmt.Errorf("%w: payment in status %s has no receipt to send", ErrValidation, payment.Status)
	}

	payment.Status = entity.PaymentStatusReceiptSent
	if req.ReceiptURL != "" {
		payment.ReceiptURL = req.ReceiptURL
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
