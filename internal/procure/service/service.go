package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/procureflow/procureflow/internal/config"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services procurement service set
type Services struct {
	Registration *RegistrationService
	Catalog      *CatalogService
	Enquiry      *EnquiryService
	Quotation    *QuotationService
	LOI          *LOIService
	Order        *OrderService
	Invoice      *InvoiceService
	Payment      *PaymentService
	Analytics    *AnalyticsService
	Export       *ExportService
	Document     *DocumentService
}

// NewServices creates the procurement service set. MinIO is optional; the
// document service reports it unconfigured per call when absent.
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	return &Services{
		Registration: NewRegistrationService(repos.Vendor, repos.Company),
		Catalog:      NewCatalogService(repos.Company, repos.Product, repos.Component),
		Enquiry:      NewEnquiryService(repos.Enquiry, repos.Vendor, repos.Component),
		Quotation:    NewQuotationService(repos.Quotation, repos.Enquiry, db),
		LOI:          NewLOIService(repos.LOI, repos.Quotation, db),
		Order:        NewOrderService(repos.Order, repos.LOI, repos.Quotation, db),
		Invoice:      NewInvoiceService(repos.Invoice, repos.Order, repos.Payment),
		Payment:      NewPaymentService(repos.Payment, repos.Invoice, repos.Order),
		Analytics:    NewAnalyticsService(repos.Analytics, rdb),
		Export:       NewExportService(repos.Order),
		Document:     NewDocumentService(minioClient, cfg.MinIO.Bucket),
	}
}
