package repository

import (
	"context"
	"errors"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// LOIRepository letters of intent
type LOIRepository struct {
	db *gorm.DB
}

func NewLOIRepository(db *gorm.DB) *LOIRepository {
	return &LOIRepository{db: db}
}

func (r *LOIRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseLOI, int64, error) {
	var items []entity.PurchaseLOI
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseLOI{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if quotationID := filters["quotation_id"]; quotationID != "" {
		query = query.Where("quotation_id = ?", quotationID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *LOIRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseLOI, error) {
	var loi entity.PurchaseLOI
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loi).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &loi, nil
}

func (r *LOIRepository) Create(ctx context.Context, loi *entity.PurchaseLOI) error {
	return r.db.WithContext(ctx).Create(loi).Error
}

func (r *LOIRepository) Update(ctx context.Context, loi *entity.PurchaseLOI) error {
	return r.db.WithContext(ctx).Save(loi).Error
}

// GenerateCode generates an LOI code LOI-{year}-{4 digits}
func (r *LOIRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.PurchaseLOI{}, "loi_code", "LOI")
}
