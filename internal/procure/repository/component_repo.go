package repository

import (
	"context"
	"errors"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// ComponentRepository component catalog incl. vendor-submitted components
type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func (r *ComponentRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Component, int64, error) {
	var items []entity.Component
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Component{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if reviewStatus := filters["review_status"]; reviewStatus != "" {
		query = query.Where("review_status = ?", reviewStatus)
	}
	if category := filters["category"]; category != "" {
		query = query.Where("category = ?", category)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *ComponentRepository) FindByID(ctx context.Context, id string) (*entity.Component, error) {
	var component entity.Component
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&component).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &component, nil
}

func (r *ComponentRepository) Create(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *ComponentRepository) Update(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *ComponentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Component{}).Error
}

// GenerateCode generates a component code CMP-{year}-{4 digits}
func (r *ComponentRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.Component{}, "code", "CMP")
}
