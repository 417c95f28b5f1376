package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// VendorRepository vendor registrations
type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// FindAll lists vendors with optional status/certificate/search filters.
func (r *VendorRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vendor, int64, error) {
	var items []entity.Vendor
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Vendor{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if certStatus := filters["certificate_status"]; certStatus != "" {
		query = query.Where("certificate_status = ?", certStatus)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("company_name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByEmail returns nil without error when no vendor has the email.
func (r *VendorRepository) FindByEmail(ctx context.Context, email string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *VendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *VendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// GenerateCode generates a vendor code VND-{year}-{4 digits}
func (r *VendorRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.Vendor{}, "vendor_code", "VND")
}

// generateCode shared sequential code generator {prefix}-{year}-{4 digits}.
func generateCode(ctx context.Context, db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	year := time.Now().Format("2006")
	like := fmt.Sprintf("%s-%s-", prefix, year)

	var maxCode string
	err := db.WithContext(ctx).
		Model(model).
		Select(fmt.Sprintf("COALESCE(MAX(%s), '')", column)).
		Where(column+" LIKE ?", like+"%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxCode != "" {
		fmt.Sscanf(maxCode, prefix+"-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("%s-%s-%04d", prefix, year, seq), nil
}
