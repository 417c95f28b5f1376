package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/procureflow/procureflow/internal/auth"
	"github.com/procureflow/procureflow/internal/config"
	"github.com/procureflow/procureflow/internal/middleware"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/handler"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting procureflow service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&entity.Vendor{},
		&entity.Company{},
		&entity.Product{},
		&entity.Component{},
		&entity.PurchaseEnquiry{},
		&entity.EnquiryItem{},
		&entity.PurchaseQuotation{},
		&entity.QuotationItem{},
		&entity.CounterQuotation{},
		&entity.CounterQuotationItem{},
		&entity.PurchaseLOI{},
		&entity.PurchaseOrder{},
		&entity.OrderItem{},
		&entity.VendorInvoice{},
		&entity.InvoiceItem{},
		&entity.PurchasePayment{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg)

	users := auth.NewUserRepository(db)
	mailer := auth.NewSMTPMailer(cfg.SMTP)
	authSvc := auth.NewService(users, repos.Vendor, mailer, cfg.JWT, zapLogger)

	handlers := handler.NewHandlers(services, authSvc)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestMetrics())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// no login required
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/set-password", h.Auth.SetPassword)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
		}

		api := v1.Group("")
		api.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			api.GET("/auth/me", h.Auth.Me)

			vendors := api.Group("/vendors")
			{
				vendors.GET("", middleware.RequireManager(), h.Vendor.ListVendors)
				vendors.GET("/:id", h.Vendor.GetVendor)
				vendors.PUT("/:id", h.Vendor.UpdateVendor)
				vendors.POST("/:id/approve", middleware.RequireManager(), h.Vendor.ApproveVendor)
				vendors.POST("/:id/reject", middleware.RequireManager(), h.Vendor.RejectVendor)
				vendors.PUT("/:id/certificate", middleware.RequireManager(), h.Vendor.UpdateCertificate)
			}

			companies := api.Group("/companies")
			companies.Use(middleware.RequireManager())
			{
				companies.GET("", h.Catalog.ListCompanies)
				companies.GET("/:id", h.Catalog.GetCompany)
				companies.PUT("/:id", h.Catalog.UpdateCompany)
			}

			products := api.Group("/products")
			{
				products.GET("", h.Catalog.ListProducts)
				products.GET("/:id", h.Catalog.GetProduct)
				products.POST("", middleware.RequireManager(), h.Catalog.CreateProduct)
				products.PUT("/:id", middleware.RequireManager(), h.Catalog.UpdateProduct)
				products.DELETE("/:id", middleware.RequireManager(), h.Catalog.DeleteProduct)
			}

			components := api.Group("/components")
			{
				components.GET("", h.Catalog.ListComponents)
				components.GET("/:id", h.Catalog.GetComponent)
				components.POST("", h.Catalog.CreateComponent)
				components.PUT("/:id", h.Catalog.UpdateComponent)
				components.POST("/:id/review", middleware.RequireManager(), h.Catalog.ReviewComponent)
				components.DELETE("/:id", middleware.RequireManager(), h.Catalog.DeleteComponent)
			}

			enquiries := api.Group("/enquiries")
			{
				enquiries.GET("", h.Enquiry.ListEnquiries)
				enquiries.GET("/:id", h.Enquiry.GetEnquiry)
				enquiries.POST("", h.Enquiry.CreateEnquiry)
				enquiries.PUT("/:id", middleware.RequireManager(), h.Enquiry.UpdateEnquiry)
				enquiries.POST("/:id/reject", middleware.RequireVendor(), h.Enquiry.RejectEnquiry)
			}

			quotations := api.Group("/quotations")
			{
				quotations.GET("", h.Quotation.ListQuotations)
				quotations.GET("/:id", h.Quotation.GetQuotation)
				quotations.POST("", middleware.RequireVendor(), h.Quotation.CreateQuotation)
				quotations.PUT("/:id", middleware.RequireVendor(), h.Quotation.UpdateQuotation)
				quotations.GET("/:id/counters", h.Quotation.ListCounters)
				quotations.POST("/:id/counters", middleware.RequireVendor(), h.Quotation.CreateCounter)
			}

			counters := api.Group("/counter-quotations")
			{
				counters.GET("/:id", h.Quotation.GetCounter)
				counters.POST("/:id/decide", middleware.RequireManager(), h.Quotation.DecideCounter)
			}

			lois := api.Group("/lois")
			{
				lois.GET("", h.LOI.ListLOIs)
				lois.GET("/:id", h.LOI.GetLOI)
				lois.POST("", middleware.RequireManager(), h.LOI.CreateLOI)
				lois.PUT("/:id", middleware.RequireManager(), h.LOI.UpdateLOI)
				lois.POST("/:id/respond", middleware.RequireVendor(), h.LOI.RespondLOI)
			}

			orders := api.Group("/orders")
			{
				orders.GET("", h.Order.ListOrders)
				orders.GET("/export", h.Order.ExportOrders)
				orders.GET("/:id", h.Order.GetOrder)
				orders.POST("", middleware.RequireManager(), h.Order.CreateOrder)
				orders.PUT("/:id/status", middleware.RequireManager(), h.Order.UpdateOrderStatus)
				orders.POST("/:id/confirm", middleware.RequireVendor(), h.Order.ConfirmOrder)
				orders.DELETE("/:id", middleware.RequireManager(), h.Order.DeleteOrder)
			}

			invoices := api.Group("/invoices")
			{
				invoices.GET("", h.Invoice.ListInvoices)
				invoices.GET("/:id", h.Invoice.GetInvoice)
				invoices.POST("", middleware.RequireVendor(), h.Invoice.CreateInvoice)
				invoices.PUT("/:id/status", middleware.RequireManager(), h.Invoice.UpdateInvoiceStatus)
				invoices.POST("/:id/paid", middleware.RequireManager(), h.Invoice.MarkInvoicePaid)
			}

			payments := api.Group("/payments")
			{
				payments.GET("", h.Payment.ListPayments)
				payments.GET("/:id", h.Payment.GetPayment)
				payments.POST("", middleware.RequireManager(), h.Payment.CreatePayment)
				payments.POST("/:id/complete", middleware.RequireManager(), h.Payment.CompletePayment)
				payments.POST("/:id/fail", middleware.RequireManager(), h.Payment.FailPayment)
				payments.POST("/:id/receipt", middleware.RequireVendor(), h.Payment.SendReceipt)
			}

			analytics := api.Group("/analytics")
			analytics.Use(middleware.RequireManager())
			{
				analytics.GET("/dashboard", h.Analytics.Dashboard)
			}

			documents := api.Group("/documents")
			{
				documents.POST("/:kind", h.Document.Upload)
				documents.GET("/url", h.Document.DownloadURL)
			}
		}
	}
}
