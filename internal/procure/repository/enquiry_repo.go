package repository

import (
	"context"
	"errors"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// EnquiryRepository purchase enquiries (RFQs)
type EnquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

func (r *EnquiryRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseEnquiry, int64, error) {
	var items []entity.PurchaseEnquiry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseEnquiry{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("enquiry_code ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseEnquiry, error) {
	var enquiry entity.PurchaseEnquiry
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&enquiry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &enquiry, nil
}

func (r *EnquiryRepository) Create(ctx context.Context, enquiry *entity.PurchaseEnquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *EnquiryRepository) Update(ctx context.Context, enquiry *entity.PurchaseEnquiry) error {
	return r.db.WithContext(ctx).Save(enquiry).Error
}

// ReplaceItems deletes the enquiry's items and reinserts the supplied set in
// one transaction. Items are replaced wholesale on edit, never diffed.
func (r *EnquiryRepository) ReplaceItems(ctx context.Context, enquiryID string, items []entity.EnquiryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enquiry_id = ?", enquiryID).Delete(&entity.EnquiryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// GenerateCode generates an enquiry code ENQ-{year}-{4 digits}
func (r *EnquiryRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.PurchaseEnquiry{}, "enquiry_code", "ENQ")
}
