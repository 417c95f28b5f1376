package repository

import (
	"context"
	"errors"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// QuotationRepository quotations and vendor counter-quotations
type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseQuotation, int64, error) {
	var items []entity.PurchaseQuotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseQuotation{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if enquiryID := filters["enquiry_id"]; enquiryID != "" {
		query = query.Where("enquiry_id = ?", enquiryID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
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

func (r *QuotationRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseQuotation, error) {
	var quotation entity.PurchaseQuotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&quotation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quotation, nil
}

func (r *QuotationRepository) Create(ctx context.Context, quotation *entity.PurchaseQuotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *QuotationRepository) Update(ctx context.Context, quotation *entity.PurchaseQuotation) error {
	return r.db.WithContext(ctx).Save(quotation).Error
}

// GenerateCode generates a quotation code QTN-{year}-{4 digits}
func (r *QuotationRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.PurchaseQuotation{}, "quotation_code", "QTN")
}

// === counter-quotations ===

func (r *QuotationRepository) FindCounterByID(ctx context.Context, id string) (*entity.CounterQuotation, error) {
	var counter entity.CounterQuotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &counter, nil
}

func (r *QuotationRepository) FindCountersByQuotation(ctx context.Context, quotationID string) ([]entity.CounterQuotation, error) {
	var counters []entity.CounterQuotation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("quotation_id = ?", quotationID).
		Order("created_at DESC").
		Find(&counters).Error
	return counters, err
}

func (r *QuotationRepository) UpdateCounter(ctx context.Context, counter *entity.CounterQuotation) error {
	return r.db.WithContext(ctx).Save(counter).Error
}

// GenerateCounterCode generates a counter code CQT-{year}-{4 digits}
func (r *QuotationRepository) GenerateCounterCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.CounterQuotation{}, "counter_code", "CQT")
}
