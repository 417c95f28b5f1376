package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/procureflow/procureflow/internal/auth"
	"github.com/procureflow/procureflow/internal/middleware"
	"github.com/procureflow/procureflow/internal/procure/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "procureflow-test-jwt-secret"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens an isolated in-memory database and migrates every table.
// Each test gets its own named database that is closed on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:procuretest_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access test database: %v", err)
	}
	// A single connection keeps the named in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, email string, manager bool, vendorID string) string {
	now := time.Now()
	claims := middleware.JWTClaims{
		UserID:   userID,
		Name:     name,
		Email:    email,
		Manager:  manager,
		Vendor:   vendorID != "",
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "procureflow",
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			ID:        fmt.Sprintf("test-jti-%d", now.UnixNano()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// ManagerToken returns a token for a default purchase-manager test user
func ManagerToken() string {
	return GenerateTestToken("test-manager-001", "Test Manager", "manager@test.com", true, "")
}

// VendorToken returns a token for a vendor test user bound to the given
// vendor profile
func VendorToken(vendorID string) string {
	return GenerateTestToken("test-vendor-user-001", "Test Vendor", "vendor@test.com", false, vendorID)
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedVendor creates a vendor profile in the given status
func SeedVendor(t *testing.T, db *gorm.DB, id, status string) *entity.Vendor {
	t.Helper()
	vendor := &entity.Vendor{
		ID:                id,
		VendorCode:        "VND-2026-" + id[len(id)-4:],
		CompanyName:       "Vendor " + id,
		ContactName:       "Contact " + id,
		Email:             id + "@vendor.test",
		Status:            status,
		CertificateStatus: entity.CertificateStatusPending,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("Failed to seed vendor: %v", err)
	}
	return vendor
}

// SeedComponent creates an approved component with the given stock
func SeedComponent(t *testing.T, db *gorm.DB, id string, stock float64) *entity.Component {
	t.Helper()
	component := &entity.Component{
		ID:             id,
		Code:           "CMP-2026-" + id[len(id)-4:],
		Name:           "Component " + id,
		Unit:           "pcs",
		StockAvailable: stock,
		ReviewStatus:   entity.ComponentReviewApproved,
		CreatedBy:      "test-manager-001",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := db.Create(component).Error; err != nil {
		t.Fatalf("Failed to seed component: %v", err)
	}
	return component
}

// NewID returns a fresh 32-char id in the same shape the services generate
func NewID() string {
	return uuid.New().String()[:32]
}
