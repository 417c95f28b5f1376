package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// ErrInsufficientStock aborts an invoice write when a component cannot cover
// the invoiced quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// InvoiceRepository vendor invoices
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.VendorInvoice, int64, error) {
	var items []entity.VendorInvoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.VendorInvoice{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if orderID := filters["order_id"]; orderID != "" {
		query = query.Where("order_id = ?", orderID)
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

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.VendorInvoice, error) {
	var invoice entity.VendorInvoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByOrderID returns nil without error when the order has no invoice yet.
func (r *InvoiceRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.VendorInvoice, error) {
	var invoice entity.VendorInvoice
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// CreateWithStockDecrement inserts the invoice and decrements component stock
// in one transaction. A stock row that would go negative aborts the whole
// write.
func (r *InvoiceRepository) CreateWithStockDecrement(ctx context.Context, invoice *entity.VendorInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for _, item := range invoice.Items {
			res := tx.Model(&entity.Component{}).
				Where("id = ? AND stock_available >= ?", item.ComponentID, item.Quantity).
				Update("stock_available", gorm.Expr("stock_available - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for component %s", ErrInsufficientStock, item.ComponentID)
			}
		}
		return nil
	})
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.VendorInvoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// GenerateCode generates an invoice code INV-{year}-{4 digits}
func (r *InvoiceRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.VendorInvoice{}, "invoice_code", "INV")
}
