package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
)

// EnquiryService purchase enquiries. An enquiry targets one approved vendor
// and lists the components the manager wants quoted.
type EnquiryService struct {
	enquiryRepo   *repository.EnquiryRepository
	vendorRepo    *repository.VendorRepository
	componentRepo *repository.ComponentRepository
}

func NewEnquiryService(enquiryRepo *repository.EnquiryRepository, vendorRepo *repository.VendorRepository, componentRepo *repository.ComponentRepository) *EnquiryService {
	return &EnquiryService{
		enquiryRepo:   enquiryRepo,
		vendorRepo:    vendorRepo,
		componentRepo: componentRepo,
	}
}

func (s *EnquiryService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseEnquiry, int64, error) {
	return s.enquiryRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *EnquiryService) Get(ctx context.Context, id string) (*entity.PurchaseEnquiry, error) {
	return s.enquiryRepo.FindByID(ctx, id)
}

// CreateEnquiryItem enquiry line input
type CreateEnquiryItem struct {
	ComponentID   string  `json:"component_id" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required"`
	Unit          string  `json:"unit"`
	Specification string  `json:"specification"`
}

// CreateEnquiryRequest new enquiry. Vendor callers have vendor_id pinned to
// their own profile at the handler.
type CreateEnquiryRequest struct {
	VendorID string              `json:"vendor_id"`
	Notes    string              `json:"notes"`
	Items    []CreateEnquiryItem `json:"items" binding:"required,min=1"`
}

func (s *EnquiryService) Create(ctx context.Context, userID string, req *CreateEnquiryRequest) (*entity.PurchaseEnquiry, error) {
	if req.VendorID == "" {
		return nil, fmt.Errorf("%w: vendor_id is required", ErrValidation)
	}
	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != entity.VendorStatusApproved {
		return nil, fmt.Errorf("%w: vendor is not approved", ErrValidation)
	}

	items, err := s.buildItems(ctx, "", req.Items)
	if err != nil {
		return nil, err
	}

	code, err := s.enquiryRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	enquiry := &entity.PurchaseEnquiry{
		ID:          uuid.New().String()[:32],
		EnquiryCode: code,
		VendorID:    req.VendorID,
		RequestedBy: userID,
		Status:      entity.EnquiryStatusPending,
		Notes:       req.Notes,
	}
	for i := range items {
		items[i].EnquiryID = enquiry.ID
	}
	enquiry.Items = items

	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	return s.enquiryRepo.FindByID(ctx, enquiry.ID)
}

func (s *EnquiryService) buildItems(ctx context.Context, enquiryID string, reqItems []CreateEnquiryItem) ([]entity.EnquiryItem, error) {
	items := make([]entity.EnquiryItem, 0, len(reqItems))
	for i, ri := range reqItems {
		if ri.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		component, err := s.componentRepo.FindByID(ctx, ri.ComponentID)
		if err != nil {
			return nil, err
		}
		if component.ReviewStatus != entity.ComponentReviewApproved {
			return nil, fmt.Errorf("%w: component %s is not approved", ErrValidation, component.Code)
		}

		unit := ri.Unit
		if unit == "" {
			unit = component.Unit
		}
		items = append(items, entity.EnquiryItem{
			ID:            uuid.New().String()[:32],
			EnquiryID:     enquiryID,
			ComponentID:   ri.ComponentID,
			Quantity:      ri.Quantity,
			Unit:          unit,
			Specification: ri.Specification,
			SortOrder:     i,
		})
	}
	return items, nil
}

// UpdateEnquiryRequest enquiry edit. Items, when present, replace the
// existing set wholesale.
type UpdateEnquiryRequest struct {
	Notes *string             `json:"notes"`
	Items []CreateEnquiryItem `json:"items"`
}

// Update edits a pending or rejected enquiry. Editing a rejected enquiry
// reopens it to pending and clears the rejection reason.
func (s *EnquiryService) Update(ctx context.Context, id string, req *UpdateEnquiryRequest) (*entity.PurchaseEnquiry, error) {
	enquiry, err := s.enquiryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enquiry.Status == entity.EnquiryStatusQuoted {
		return nil, fmt.Errorf("%w: a quoted enquiry cannot be edited", ErrValidation)
	}

	if req.Notes != nil {
		enquiry.Notes = *req.Notes
	}
	if enquiry.Status == entity.EnquiryStatusRejected {
		enquiry.Status = entity.EnquiryStatusPending
		enquiry.RejectionReason = ""
	}
	enquiry.Items = nil

	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return nil, err
	}

	if req.Items != nil {
		items, err := s.buildItems(ctx, enquiry.ID, req.Items)
		if err != nil {
			return nil, err
		}
		if err := s.enquiryRepo.ReplaceItems(ctx, enquiry.ID, items); err != nil {
			return nil, err
		}
	}

	return s.enquiryRepo.FindByID(ctx, enquiry.ID)
}

// RejectEnquiryRequest vendor rejection
type RejectEnquiryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject vendor declines to quote the enquiry.
func (s *EnquiryService) Reject(ctx context.Context, id, vendorID string, req *RejectEnquiryRequest) (*entity.PurchaseEnquiry, error) {
	enquiry, err := s.enquiryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enquiry.VendorID != vendorID {
		return nil, fmt.Errorf("%w: enquiry belongs to another vendor", ErrForbidden)
	}
	if !entity.CanTransition(entity.ValidEnquiryTransitions, enquiry.Status, entity.EnquiryStatusRejected) {
		return nil, fmt.Errorf("%w: enquiry in status %s cannot be rejected", ErrValidation, enquiry.Status)
	}

	enquiry.Status = entity.EnquiryStatusRejected
	enquiry.RejectionReason = req.Reason
	enquiry.Items = nil
	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return nil, err
	}
	return s.enquiryRepo.FindByID(ctx, enquiry.ID)
}
