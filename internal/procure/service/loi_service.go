package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"gorm.io/gorm"
)

// LOIService letters of intent. An LOI is issued against an accepted
// quotation and carries the payment split forward; the vendor accepts or
// rejects it before an order can be cut.
type LOIService struct {
	loiRepo       *repository.LOIRepository
	quotationRepo *repository.QuotationRepository
	db            *gorm.DB
}

func NewLOIService(loiRepo *repository.LOIRepository, quotationRepo *repository.QuotationRepository, db *gorm.DB) *LOIService {
	return &LOIService{
		loiRepo:       loiRepo,
		quotationRepo: quotationRepo,
		db:            db,
	}
}

func (s *LOIService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseLOI, int64, error) {
	return s.loiRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *LOIService) Get(ctx context.Context, id string) (*entity.PurchaseLOI, error) {
	return s.loiRepo.FindByID(ctx, id)
}

// CreateLOIRequest new LOI against an accepted quotation. When the price was
// settled through a counter, the counter id pins the agreed total.
type CreateLOIRequest struct {
	QuotationID        string  `json:"quotation_id" binding:"required"`
	CounterQuotationID *string `json:"counter_quotation_id"`
	Notes              string  `json:"notes"`
}

// Create issues the LOI and flips the quotation to approved in one
// transaction.
func (s *LOIService) Create(ctx context.Context, userID string, req *CreateLOIRequest) (*entity.PurchaseLOI, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, req.QuotationID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidQuotationTransitions, quotation.Status, entity.QuotationStatusApproved) {
		return nil, fmt.Errorf("%w: quotation in status %s cannot receive an LOI", ErrValidation, quotation.Status)
	}

	total := quotation.TotalAmount
	if req.CounterQuotationID != nil {
		counter, err := s.quotationRepo.FindCounterByID(ctx, *req.CounterQuotationID)
		if err != nil {
			return nil, err
		}
		if counter.QuotationID != quotation.ID {
			return nil, fmt.Errorf("%w: counter-quotation does not belong to this quotation", ErrValidation)
		}
		if counter.Status != entity.CounterStatusAccepted {
			return nil, fmt.Errorf("%w: counter-quotation is not accepted", ErrValidation)
		}
		total = counter.TotalAmount
	}

	code, err := s.loiRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	loi := &entity.PurchaseLOI{
		ID:                    uuid.New().String()[:32],
		LOICode:               code,
		QuotationID:           quotation.ID,
		CounterQuotationID:    req.CounterQuotationID,
		VendorID:              quotation.VendorID,
		TotalAmount:           total,
		AdvancePaymentPercent: quotation.AdvancePaymentPercent,
		FinalPaymentPercent:   quotation.FinalPaymentPercent,
		Status:                entity.LOIStatusSent,
		CreatedBy:             userID,
		Notes:                 req.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loi).Error; err != nil {
			return err
		}
		return tx.Model(&entity.PurchaseQuotation{}).
			Where("id = ?", quotation.ID).
			Update("status", entity.QuotationStatusApproved).Error
	})
	if err != nil {
		return nil, err
	}
	return loi, nil
}

// RespondLOIRequest vendor response
type RespondLOIRequest struct {
	Accept bool   `json:"accept"`
	Notes  string `json:"notes"`
}

// Respond records the vendor's accept/reject and stamps the response date.
func (s *LOIService) Respond(ctx context.Context, id, vendorID string, req *RespondLOIRequest) (*entity.PurchaseLOI, error) {
	loi, err := s.loiRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loi.VendorID != vendorID {
		return nil, fmt.Errorf("%w: LOI belongs to another vendor", ErrForbidden)
	}

	target := entity.LOIStatusRejected
	if req.Accept {
		target = entity.LOIStatusAccepted
	}
	if !entity.CanTransition(entity.ValidLOITransitions, loi.Status, target) {
		return nil, fmt.Errorf("%w: LOI in status %s cannot move to %s", ErrValidation, loi.Status, target)
	}

	now := time.Now()
	loi.Status = target
	loi.VendorResponseDate = &now
	if req.Notes != "" {
		loi.Notes = req.Notes
	}

	if err := s.loiRepo.Update(ctx, loi); err != nil {
		return nil, err
	}
	return loi, nil
}

// UpdateLOIRequest manager patch. Resending a rejected LOI clears the
// previous vendor response.
type UpdateLOIRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func (s *LOIService) Update(ctx context.Context, id string, req *UpdateLOIRequest) (*entity.PurchaseLOI, error) {
	loi, err := s.loiRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != loi.Status {
		if !entity.CanTransition(entity.ValidLOITransitions, loi.Status, *req.Status) {
			return nil, fmt.Errorf("%w: LOI in status %s cannot move to %s", ErrValidation, loi.Status, *req.Status)
		}
		loi.Status = *req.Status
		if *req.Status == entity.LOIStatusSent {
			loi.VendorResponseDate = nil
		}
	}
	if req.Notes != nil {
		loi.Notes = *req.Notes
	}

	if err := s.loiRepo.Update(ctx, loi); err != nil {
		return nil, err
	}
	return loi, nil
}
