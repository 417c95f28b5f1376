package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
)

// RegistrationService vendor approval workflow and profile edits. A vendor
// must be approved here before any pipeline stage will transact with it.
type RegistrationService struct {
	vendorRepo  *repository.VendorRepository
	companyRepo *repository.CompanyRepository
}

func NewRegistrationService(vendorRepo *repository.VendorRepository, companyRepo *repository.CompanyRepository) *RegistrationService {
	return &RegistrationService{vendorRepo: vendorRepo, companyRepo: companyRepo}
}

func (s *RegistrationService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vendor, int64, error) {
	return s.vendorRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *RegistrationService) Get(ctx context.Context, id string) (*entity.Vendor, error) {
	return s.vendorRepo.FindByID(ctx, id)
}

// UpdateVendorRequest profile patch
type UpdateVendorRequest struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	GSTIN       *string `json:"gstin"`
	Notes       *string `json:"notes"`
}

func (s *RegistrationService) Update(ctx context.Context, id string, req *UpdateVendorRequest) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		vendor.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		vendor.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.GSTIN != nil {
		vendor.GSTIN = *req.GSTIN
	}
	if req.Notes != nil {
		vendor.Notes = *req.Notes
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Approve marks the vendor approved and idempotently links or creates its
// Company record. Lookup order: existing vendor link, the vendor's company
// id, email, company name, then create.
func (s *RegistrationService) Approve(ctx context.Context, id, userID string) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidVendorTransitions, vendor.Status, entity.VendorStatusApproved) {
		return nil, fmt.Errorf("%w: vendor in status %s cannot be approved", ErrValidation, vendor.Status)
	}

	company, err := s.resolveCompany(ctx, vendor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vendor.Status = entity.VendorStatusApproved
	vendor.RejectionReason = ""
	vendor.ApprovedBy = &userID
	vendor.ApprovedAt = &now
	vendor.CompanyID = &company.ID

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *RegistrationService) resolveCompany(ctx context.Context, vendor *entity.Vendor) (*entity.Company, error) {
	company, err := s.companyRepo.FindByVendorID(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	if company == nil && vendor.CompanyID != nil {
		company, err = s.companyRepo.FindByID(ctx, *vendor.CompanyID)
		if err != nil && err != repository.ErrNotFound {
			return nil, err
		}
		err = nil
	}
	if company == nil {
		company, err = s.companyRepo.FindByEmail(ctx, vendor.Email)
		if err != nil {
			return nil, err
		}
	}
	if company == nil {
		company, err = s.companyRepo.FindByName(ctx, vendor.CompanyName)
		if err != nil {
			return nil, err
		}
	}

	if company == nil {
		company = &entity.Company{
			ID:       uuid.New().String()[:32],
			Name:     vendor.CompanyName,
			Email:    vendor.Email,
			Phone:    vendor.Phone,
			Address:  vendor.Address,
			GSTIN:    vendor.GSTIN,
			VendorID: &vendor.ID,
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return nil, err
		}
		return company, nil
	}

	if company.VendorID == nil || *company.VendorID != vendor.ID {
		company.VendorID = &vendor.ID
		if err := s.companyRepo.Update(ctx, company); err != nil {
			return nil, err
		}
	}
	return company, nil
}

// Reject stores the rejection reason.
func (s *RegistrationService) Reject(ctx context.Context, id, reason string) (*entity.Vendor, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidVendorTransitions, vendor.Status, entity.VendorStatusRejected) {
		return nil, fmt.Errorf("%w: vendor in status %s cannot be rejected", ErrValidation, vendor.Status)
	}

	vendor.Status = entity.VendorStatusRejected
	vendor.RejectionReason = reason
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// UpdateCertificateStatus certificate review verdict.
func (s *RegistrationService) UpdateCertificateStatus(ctx context.Context, id, status string) (*entity.Vendor, error) {
	switch status {
	case entity.CertificateStatusPending, entity.CertificateStatusApproved, entity.CertificateStatusRejected:
	default:
		return nil, fmt.Errorf("%w: invalid certificate status %q", ErrValidation, status)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.CertificateStatus = status
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}
