package repository

import (
	"context"
	"errors"
	"time"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/gorm"
)

// PaymentRepository payment ledger
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchasePayment, int64, error) {
	var items []entity.PurchasePayment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchasePayment{})

	if orderID := filters["order_id"]; orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}
	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if phase := filters["phase"]; phase != "" {
		query = query.Where("phase = ?", phase)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.PurchasePayment, error) {
	var payment entity.PurchasePayment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.PurchasePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) Update(ctx context.Context, payment *entity.PurchasePayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// SumNonFailedByOrder sums every payment on the order except failed ones.
func (r *PaymentRepository) SumNonFailedByOrder(ctx context.Context, orderID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.PurchasePayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("order_id = ? AND status <> ?", orderID, entity.PaymentStatusFailed).
		Scan(&total).Error
	return total, err
}

// CompleteWithCascade marks the payment completed and, when the order is paid
// up within tolerance, cascades the order to completed and the invoice to
// paid in one transaction.
func (r *PaymentRepository) CompleteWithCascade(ctx context.Context, payment *entity.PurchasePayment, invoiceTotal float64, tolerance float64) (fullyPaid bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		payment.Status = entity.PaymentStatusCompleted
		payment.PaymentDate = &now
		if err := tx.Save(payment).Error; err != nil {
			return err
		}

		var paid float64
		if err := tx.Model(&entity.PurchasePayment{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("order_id = ? AND status <> ?", payment.OrderID, entity.PaymentStatusFailed).
			Scan(&paid).Error; err != nil {
			return err
		}

		if invoiceTotal-paid > tolerance {
			return nil
		}
		fullyPaid = true

		if err := tx.Model(&entity.PurchaseOrder{}).
			Where("id = ?", payment.OrderID).
			Update("status", entity.OrderStatusCompleted).Error; err != nil {
			return err
		}
		return tx.Model(&entity.VendorInvoice{}).
			Where("id = ?", payment.InvoiceID).
			Update("status", entity.InvoiceStatusPaid).Error
	})
	return fullyPaid, err
}

// GenerateCode generates a payment code PAY-{year}-{4 digits}
func (r *PaymentRepository) GenerateCode(ctx context.Context) (string, error) {
	return generateCode(ctx, r.db, &entity.PurchasePayment{}, "payment_code", "PAY")
}
