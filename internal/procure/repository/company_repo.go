package repository

import (
	"context"
	"errors"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// CompanyRepository buyer-side company records
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Company, int64, error) {
	var items []entity.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Company{})

	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByVendorID returns nil without error when no company is linked.
func (r *CompanyRepository) FindByVendorID(ctx context.Context, vendorID string) (*entity.Company, error) {
	return r.findOne(ctx, "vendor_id = ?", vendorID)
}

// FindByEmail returns nil without error when no company matches.
func (r *CompanyRepository) FindByEmail(ctx context.Context, email string) (*entity.Company, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByName returns nil without error when no company matches.
func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *CompanyRepository) findOne(ctx context.Context, cond string, arg interface{}) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).Where(cond, arg).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Company{}).Error
}
