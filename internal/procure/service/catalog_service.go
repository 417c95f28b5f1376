package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
)

// CatalogService companies, products and components. Vendor-submitted
// components stay pending until a manager review approves them.
type CatalogService struct {
	companyRepo   *repository.CompanyRepository
	productRepo   *repository.ProductRepository
	componentRepo *repository.ComponentRepository
}

func NewCatalogService(companyRepo *repository.CompanyRepository, productRepo *repository.ProductRepository, componentRepo *repository.ComponentRepository) *CatalogService {
	return &CatalogService{
		companyRepo:   companyRepo,
		productRepo:   productRepo,
		componentRepo: componentRepo,
	}
}

// === companies ===

func (s *CatalogService) ListCompanies(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Company, int64, error) {
	return s.companyRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *CatalogService) GetCompany(ctx context.Context, id string) (*entity.Company, error) {
	return s.companyRepo.FindByID(ctx, id)
}

// UpdateCompanyRequest company patch
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
}

func (s *CatalogService) UpdateCompany(ctx context.Context, id string, req *UpdateCompanyRequest) (*entity.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.GSTIN != nil {
		company.GSTIN = *req.GSTIN
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// === products ===

func (s *CatalogService) ListProducts(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Product, int64, error) {
	return s.productRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// CreateProductRequest new product
type CreateProductRequest struct {
	SKU         string   `json:"sku" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	Price       *float64 `json:"price"`
}

func (s *CatalogService) CreateProduct(ctx context.Context, userID string, req *CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		ID:          uuid.New().String()[:32],
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        req.Unit,
		Price:       req.Price,
		CreatedBy:   userID,
	}
	if product.Unit == "" {
		product.Unit = "pcs"
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductRequest product patch
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Unit        *string  `json:"unit"`
	Price       *float64 `json:"price"`
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Price != nil {
		product.Price = req.Price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// === components ===

func (s *CatalogService) ListComponents(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Component, int64, error) {
	return s.componentRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *CatalogService) GetComponent(ctx context.Context, id string) (*entity.Component, error) {
	return s.componentRepo.FindByID(ctx, id)
}

// CreateComponentRequest new component. Manager-created components are
// approved immediately; vendor submissions start in review.
type CreateComponentRequest struct {
	Name           string   `json:"name" binding:"required"`
	Specification  string   `json:"specification"`
	Category       string   `json:"category"`
	Unit           string   `json:"unit"`
	UnitPrice      *float64 `json:"unit_price"`
	StockAvailable float64  `json:"stock_available"`
}

func (s *CatalogService) CreateComponent(ctx context.Context, userID string, vendorID *string, req *CreateComponentRequest) (*entity.Component, error) {
	if req.StockAvailable < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	code, err := s.componentRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	component := &entity.Component{
		ID:             uuid.New().String()[:32],
		Code:           code,
		Name:           req.Name,
		Specification:  req.Specification,
		Category:       req.Category,
		Unit:           req.Unit,
		UnitPrice:      req.UnitPrice,
		VendorID:       vendorID,
		StockAvailable: req.StockAvailable,
		ReviewStatus:   entity.ComponentReviewApproved,
		CreatedBy:      userID,
	}
	if component.Unit == "" {
		component.Unit = "pcs"
	}
	if vendorID != nil {
		component.ReviewStatus = entity.ComponentReviewPending
	}

	if err := s.componentRepo.Create(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

// UpdateComponentRequest component patch. A vendor editing a rejected
// component sends it back to review.
type UpdateComponentRequest struct {
	Name           *string  `json:"name"`
	Specification  *string  `json:"specification"`
	Category       *string  `json:"category"`
	Unit           *string  `json:"unit"`
	UnitPrice      *float64 `json:"unit_price"`
	StockAvailable *float64 `json:"stock_available"`
}

func (s *CatalogService) UpdateComponent(ctx context.Context, id string, vendorID *string, req *UpdateComponentRequest) (*entity.Component, error) {
	component, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendorID != nil && (component.VendorID == nil || *component.VendorID != *vendorID) {
		return nil, fmt.Errorf("%w: component belongs to another vendor", ErrForbidden)
	}

	if req.Name != nil {
		component.Name = *req.Name
	}
	if req.Specification != nil {
		component.Specification = *req.Specification
	}
	if req.Category != nil {
		component.Category = *req.Category
	}
	if req.Unit != nil {
		component.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		component.UnitPrice = req.UnitPrice
	}
	if req.StockAvailable != nil {
		if *req.StockAvailable < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
		}
		component.StockAvailable = *req.StockAvailable
	}

	if vendorID != nil && component.ReviewStatus == entity.ComponentReviewRejected {
		component.ReviewStatus = entity.ComponentReviewPending
		component.ReviewNotes = ""
	}

	if err := s.componentRepo.Update(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

// ReviewComponentRequest review verdict
type ReviewComponentRequest struct {
	Status string `json:"status" binding:"required"` // approved/rejected
	Notes  string `json:"notes"`
}

func (s *CatalogService) ReviewComponent(ctx context.Context, id string, req *ReviewComponentRequest) (*entity.Component, error) {
	if req.Status != entity.ComponentReviewApproved && req.Status != entity.ComponentReviewRejected {
		return nil, fmt.Errorf("%w: invalid review status %q", ErrValidation, req.Status)
	}

	component, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidComponentReviewTransitions, component.ReviewStatus, req.Status) {
		return nil, fmt.Errorf("%w: component in review status %s cannot move to %s", ErrValidation, component.ReviewStatus, req.Status)
	}

	component.ReviewStatus = req.Status
	component.ReviewNotes = req.Notes
	if err := s.componentRepo.Update(ctx, component); err != nil {
		return nil, err
	}
	return component, nil
}

func (s *CatalogService) DeleteComponent(ctx context.Context, id string) error {
	if _, err := s.componentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.componentRepo.Delete(ctx, id)
}
