package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"gorm.io/gorm"
)

// OrderService purchase orders cut from accepted LOIs. The advance/final
// amounts are frozen from the LOI's payment split at creation time.
type OrderService struct {
	orderRepo     *repository.OrderRepository
	loiRepo       *repository.LOIRepository
	quotationRepo *repository.QuotationRepository
	db            *gorm.DB
}

func NewOrderService(orderRepo *repository.OrderRepository, loiRepo *repository.LOIRepository, quotationRepo *repository.QuotationRepository, db *gorm.DB) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		loiRepo:       loiRepo,
		quotationRepo: quotationRepo,
		db:            db,
	}
}

func (s *OrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	return s.orderRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// CreateOrderRequest new order from an accepted LOI
type CreateOrderRequest struct {
	LOIID string `json:"loi_id" binding:"required"`
	Notes string `json:"notes"`
}

// Create copies the settled line items onto the order, splits the total into
// advance and final amounts and confirms the LOI in one transaction. When the
// price came from a negotiated counter the counter's items win.
func (s *OrderService) Create(ctx context.Context, userID string, req *CreateOrderRequest) (*entity.PurchaseOrder, error) {
	loi, err := s.loiRepo.FindByID(ctx, req.LOIID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidLOITransitions, loi.Status, entity.LOIStatusConfirmed) {
		return nil, fmt.Errorf("%w: LOI in status %s cannot be converted to an order", ErrValidation, loi.Status)
	}

	items, err := s.settledItems(ctx, loi)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no settled items to order", ErrValidation)
	}

	code, err := s.orderRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	advance := Round2(loi.TotalAmount * loi.AdvancePaymentPercent / 100)
	order := &entity.PurchaseOrder{
		ID:            uuid.New().String()[:32],
		OrderCode:     code,
		LOIID:         loi.ID,
		VendorID:      loi.VendorID,
		TotalAmount:   loi.TotalAmount,
		AdvanceAmount: advance,
		FinalAmount:   Round2(loi.TotalAmount - advance),
		Status:        entity.OrderStatusPending,
		CreatedBy:     userID,
		Notes:         req.Notes,
	}
	for i := range items {
		items[i].OrderID = order.ID
		items[i].SortOrder = i
	}
	order.Items = items

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Model(&entity.PurchaseLOI{}).
			Where("id = ?", loi.ID).
			Update("status", entity.LOIStatusConfirmed).Error
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, order.ID)
}

func (s *OrderService) settledItems(ctx context.Context, loi *entity.PurchaseLOI) ([]entity.OrderItem, error) {
	if loi.CounterQuotationID != nil {
		counter, err := s.quotationRepo.FindCounterByID(ctx, *loi.CounterQuotationID)
		if err != nil {
			return nil, err
		}
		// An accept counter carries no repriced lines of its own; the
		// quotation's items below are the settled ones in that case.
		if len(counter.Items) > 0 {
			items := make([]entity.OrderItem, 0, len(counter.Items))
			for _, ci := range counter.Items {
				items = append(items, entity.OrderItem{
					ID:              uuid.New().String()[:32],
					ComponentID:     ci.ComponentID,
					Quantity:        ci.Quantity,
					Unit:            ci.Unit,
					UnitPrice:       ci.UnitPrice,
					DiscountPercent: ci.DiscountPercent,
					CGSTPercent:     ci.CGSTPercent,
					SGSTPercent:     ci.SGSTPercent,
					LineTotal:       ci.LineTotal,
				})
			}
			return items, nil
		}
	}

	quotation, err := s.quotationRepo.FindByID(ctx, loi.QuotationID)
	if err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, 0, len(quotation.Items))
	for _, qi := range quotation.Items {
		items = append(items, entity.OrderItem{
			ID:              uuid.New().String()[:32],
			ComponentID:     qi.ComponentID,
			Quantity:        qi.Quantity,
			Unit:            qi.Unit,
			UnitPrice:       qi.UnitPrice,
			DiscountPercent: qi.DiscountPercent,
			CGSTPercent:     qi.CGSTPercent,
			SGSTPercent:     qi.SGSTPercent,
			LineTotal:       qi.LineTotal,
		})
	}
	return items, nil
}

// UpdateOrderStatusRequest manager status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *UpdateOrderStatusRequest) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(entity.ValidOrderTransitions, order.Status, req.Status) {
		return nil, fmt.Errorf("%w: order in status %s cannot move to %s", ErrValidation, order.Status, req.Status)
	}

	order.Status = req.Status
	if req.Notes != "" {
		order.Notes = req.Notes
	}
	order.Items = nil
	order.Vendor = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, order.ID)
}

// Confirm vendor acknowledges a pending order.
func (s *OrderService) Confirm(ctx context.Context, id, vendorID string) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, fmt.Errorf("%w: order belongs to another vendor", ErrForbidden)
	}
	if !entity.CanTransition(entity.ValidOrderTransitions, order.Status, entity.OrderStatusConfirmed) {
		return nil, fmt.Errorf("%w: order in status %s cannot be confirmed", ErrValidation, order.Status)
	}

	order.Status = entity.OrderStatusConfirmed
	order.Items = nil
	order.Vendor = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, order.ID)
}

// Delete removes an order that has not been confirmed yet.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderStatusPending {
		return fmt.Errorf("%w: only pending orders can be deleted", ErrValidation)
	}
	return s.orderRepo.Delete(ctx, id)
}
