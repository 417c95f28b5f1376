package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories procurement repository set
type Repositories struct {
	Vendor    *VendorRepository
	Company   *CompanyRepository
	Product   *ProductRepository
	Component *ComponentRepository
	Enquiry   *EnquiryRepository
	Quotation *QuotationRepository
	LOI       *LOIRepository
	Order     *OrderRepository
	Invoice   *InvoiceRepository
	Payment   *PaymentRepository
	Analytics *AnalyticsRepository
}

// NewRepositories creates the procurement repository set
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:    NewVendorRepository(db),
		Company:   NewCompanyRepository(db),
		Product:   NewProductRepository(db),
		Component: NewComponentRepository(db),
		Enquiry:   NewEnquiryRepository(db),
		Quotation: NewQuotationRepository(db),
		LOI:       NewLOIRepository(db),
		Order:     NewOrderRepository(db),
		Invoice:   NewInvoiceRepository(db),
		Payment:   NewPaymentRepository(db),
		Analytics: NewAnalyticsRepository(db),
	}
}
