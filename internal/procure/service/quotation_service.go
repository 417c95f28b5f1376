package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"gorm.io/gorm"
)

// QuotationService quotations and the counter-quotation negotiation loop.
// Vendors quote pending enquiries and counter with accept, reject or a
// repriced negotiation; the manager settles pending counters.
type QuotationService struct {
	quotationRepo *repository.QuotationRepository
	enquiryRepo   *repository.EnquiryRepository
	db            *gorm.DB
}

func NewQuotationService(quotationRepo *repository.QuotationRepository, enquiryRepo *repository.EnquiryRepository, db *gorm.DB) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		enquiryRepo:   enquiryRepo,
		db:            db,
	}
}

func (s *QuotationService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseQuotation, int64, error) {
	return s.quotationRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *QuotationService) Get(ctx context.Context, id string) (*entity.PurchaseQuotation, error) {
	return s.quotationRepo.FindByID(ctx, id)
}

// QuoteItem priced line input, shared by quotations and counter-quotations.
type QuoteItem struct {
	ComponentID     string  `json:"component_id" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unit_price" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
	CGSTPercent     float64 `json:"cgst_percent"`
	SGSTPercent     float64 `json:"sgst_percent"`
}

func (qi *QuoteItem) validate() error {
	if qi.Quantity <= 0 {
		return fmt.Errorf("%w: item quantity must be positive", ErrValidation)
	}
	if qi.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
	}
	if !validPercent(qi.DiscountPercent) || !validPercent(qi.CGSTPercent) || !validPercent(qi.SGSTPercent) {
		return fmt.Errorf("%w: percentages must be between 0 and 100", ErrValidation)
	}
	return nil
}

// CreateQuotationRequest vendor quotation against a pending enquiry
type CreateQuotationRequest struct {
	EnquiryID             string      `json:"enquiry_id" binding:"required"`
	AdvancePaymentPercent float64     `json:"advance_payment_percent"`
	Notes                 string      `json:"notes"`
	Items                 []QuoteItem `json:"items" binding:"required,min=1"`
}

// Create inserts the quotation and flips the enquiry to quoted in one
// transaction.
func (s *QuotationService) Create(ctx context.Context, userID, vendorID string, req *CreateQuotationRequest) (*entity.PurchaseQuotation, error) {
	if !validPercent(req.AdvancePaymentPercent) {
		return nil, fmt.Errorf("%w: advance payment percent must be between 0 and 100", ErrValidation)
	}

	enquiry, err := s.enquiryRepo.FindByID(ctx, req.EnquiryID)
	if err != nil {
		return nil, err
	}
	if enquiry.VendorID != vendorID {
		return nil, fmt.Errorf("%w: enquiry belongs to another vendor", ErrForbidden)
	}
	if enquiry.Status != entity.EnquiryStatusPending {
		return nil, fmt.Errorf("%w: enquiry in status %s cannot be quoted", ErrValidation, enquiry.Status)
	}

	code, err := s.quotationRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	quotation := &entity.PurchaseQuotation{
		ID:                    uuid.New().String()[:32],
		QuotationCode:         code,
		EnquiryID:             enquiry.ID,
		VendorID:              vendorID,
		AdvancePaymentPercent: req.AdvancePaymentPercent,
		FinalPaymentPercent:   100 - req.AdvancePaymentPercent,
		Status:                entity.QuotationStatusSent,
		CreatedBy:             userID,
		Notes:                 req.Notes,
	}

	var total float64
	for i, ri := range req.Items {
		if err := ri.validate(); err != nil {
			return nil, err
		}
		unit := ri.Unit
		if unit == "" {
			unit = "pcs"
		}
		lineTotal := LineTotal(ri.UnitPrice, ri.Quantity, ri.DiscountPercent, ri.CGSTPercent, ri.SGSTPercent)
		total += lineTotal
		quotation.Items = append(quotation.Items, entity.QuotationItem{
			ID:              uuid.New().String()[:32],
			QuotationID:     quotation.ID,
			ComponentID:     ri.ComponentID,
			Quantity:        ri.Quantity,
			Unit:            unit,
			UnitPrice:       ri.UnitPrice,
			DiscountPercent: ri.DiscountPercent,
			CGSTPercent:     ri.CGSTPercent,
			SGSTPercent:     ri.SGSTPercent,
			LineTotal:       lineTotal,
			SortOrder:       i,
		})
	}
	quotation.TotalAmount = Round2(total)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quotation).Error; err != nil {
			return err
		}
		return tx.Model(&entity.PurchaseEnquiry{}).
			Where("id = ?", enquiry.ID).
			Update("status", entity.EnquiryStatusQuoted).Error
	})
	if err != nil {
		return nil, err
	}
	return s.quotationRepo.FindByID(ctx, quotation.ID)
}

// UpdateQuotationRequest quotation patch, allowed while sent or negotiating.
type UpdateQuotationRequest struct {
	AdvancePaymentPercent *float64 `json:"advance_payment_percent"`
	Notes                 *string  `json:"notes"`
}

func (s *QuotationService) Update(ctx context.Context, id, vendorID string, req *UpdateQuotationRequest) (*entity.PurchaseQuotation, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation.VendorID != vendorID {
		return nil, fmt.Errorf("%w: quotation belongs to another vendor", ErrForbidden)
	}
	if quotation.Status != entity.QuotationStatusSent && quotation.Status != entity.QuotationStatusNegotiating {
		return nil, fmt.Errorf("%w: quotation in status %s cannot be edited", ErrValidation, quotation.Status)
	}

	if req.AdvancePaymentPercent != nil {
		if !validPercent(*req.AdvancePaymentPercent) {
			return nil, fmt.Errorf("%w: advance payment percent must be between 0 and 100", ErrValidation)
		}
		quotation.AdvancePaymentPercent = *req.AdvancePaymentPercent
		quotation.FinalPaymentPercent = 100 - *req.AdvancePaymentPercent
	}
	if req.Notes != nil {
		quotation.Notes = *req.Notes
	}

	quotation.Items = nil
	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}
	return s.quotationRepo.FindByID(ctx, quotation.ID)
}

// === counter-quotations ===

func (s *QuotationService) ListCounters(ctx context.Context, quotationID string) ([]entity.CounterQuotation, error) {
	if _, err := s.quotationRepo.FindByID(ctx, quotationID); err != nil {
		return nil, err
	}
	return s.quotationRepo.FindCountersByQuotation(ctx, quotationID)
}

func (s *QuotationService) GetCounter(ctx context.Context, id string) (*entity.CounterQuotation, error) {
	return s.quotationRepo.FindCounterByID(ctx, id)
}

// CreateCounterRequest vendor response to a quotation. Negotiate requires
// repriced items; accept and reject take none.
type CreateCounterRequest struct {
	Action string      `json:"action" binding:"required"` // accept/reject/negotiate
	Notes  string      `json:"notes"`
	Items  []QuoteItem `json:"items"`
}

// CreateCounter records the vendor's verdict and mirrors it onto the
// quotation in one transaction: accept settles the quotation, reject closes
// it, negotiate opens a pending counter for the manager to decide.
func (s *QuotationService) CreateCounter(ctx context.Context, id, vendorID string, req *CreateCounterRequest) (*entity.CounterQuotation, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation.VendorID != vendorID {
		return nil, fmt.Errorf("%w: quotation belongs to another vendor", ErrForbidden)
	}
	if quotation.Status != entity.QuotationStatusSent && quotation.Status != entity.QuotationStatusNegotiating {
		return nil, fmt.Errorf("%w: quotation in status %s cannot be countered", ErrValidation, quotation.Status)
	}

	var counterStatus, quotationStatus string
	switch req.Action {
	case entity.CounterActionAccept:
		counterStatus = entity.CounterStatusAccepted
		quotationStatus = entity.QuotationStatusAccepted
	case entity.CounterActionReject:
		counterStatus = entity.CounterStatusRejected
		quotationStatus = entity.QuotationStatusRejected
	case entity.CounterActionNegotiate:
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: a negotiation counter requires items", ErrValidation)
		}
		counterStatus = entity.CounterStatusPending
		quotationStatus = entity.QuotationStatusNegotiating
	default:
		return nil, fmt.Errorf("%w: invalid counter action %q", ErrValidation, req.Action)
	}

	code, err := s.quotationRepo.GenerateCounterCode(ctx)
	if err != nil {
		return nil, err
	}

	counter := &entity.CounterQuotation{
		ID:          uuid.New().String()[:32],
		CounterCode: code,
		QuotationID: quotation.ID,
		VendorID:    quotation.VendorID,
		Action:      req.Action,
		Status:      counterStatus,
		Notes:       req.Notes,
	}
	if req.Action == entity.CounterActionAccept {
		counter.TotalAmount = quotation.TotalAmount
	}

	var total float64
	for i, ri := range req.Items {
		if err := ri.validate(); err != nil {
			return nil, err
		}
		unit := ri.Unit
		if unit == "" {
			unit = "pcs"
		}
		lineTotal := LineTotal(ri.UnitPrice, ri.Quantity, ri.DiscountPercent, ri.CGSTPercent, ri.SGSTPercent)
		total += lineTotal
		counter.Items = append(counter.Items, entity.CounterQuotationItem{
			ID:                 uuid.New().String()[:32],
			CounterQuotationID: counter.ID,
			ComponentID:        ri.ComponentID,
			Quantity:           ri.Quantity,
			Unit:               unit,
			UnitPrice:          ri.UnitPrice,
			DiscountPercent:    ri.DiscountPercent,
			CGSTPercent:        ri.CGSTPercent,
			SGSTPercent:        ri.SGSTPercent,
			LineTotal:          lineTotal,
			SortOrder:          i,
		})
	}
	if req.Action == entity.CounterActionNegotiate {
		counter.TotalAmount = Round2(total)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(counter).Error; err != nil {
			return err
		}
		return tx.Model(&entity.PurchaseQuotation{}).
			Where("id = ?", quotation.ID).
			Update("status", quotationStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return s.quotationRepo.FindCounterByID(ctx, counter.ID)
}

// DecideCounterRequest manager verdict on a negotiated counter
type DecideCounterRequest struct {
	Accept bool `json:"accept"`
}

// DecideCounter lets the manager settle a pending counter. Accepting adopts
// the counter's total onto the quotation and marks it accepted; rejecting
// closes the quotation as rejected.
func (s *QuotationService) DecideCounter(ctx context.Context, counterID string, req *DecideCounterRequest) (*entity.CounterQuotation, error) {
	counter, err := s.quotationRepo.FindCounterByID(ctx, counterID)
	if err != nil {
		return nil, err
	}

	target := entity.CounterStatusRejected
	if req.Accept {
		target = entity.CounterStatusAccepted
	}
	if !entity.CanTransition(entity.ValidCounterTransitions, counter.Status, target) {
		return nil, fmt.Errorf("%w: counter-quotation in status %s is already settled", ErrValidation, counter.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter.Status = target
		items := counter.Items
		counter.Items = nil
		if err := tx.Save(counter).Error; err != nil {
			return err
		}
		counter.Items = items

		if !req.Accept {
			return tx.Model(&entity.PurchaseQuotation{}).
				Where("id = ?", counter.QuotationID).
				Update("status", entity.QuotationStatusRejected).Error
		}
		return tx.Model(&entity.PurchaseQuotation{}).
			Where("id = ?", counter.QuotationID).
			Updates(map[string]interface{}{
				"status":       entity.QuotationStatusAccepted,
				"total_amount": counter.TotalAmount,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.quotationRepo.FindCounterByID(ctx, counter.ID)
}
