package handler

import (
	"net/http"
	"testing"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/service"
	"github.com/procureflow/procureflow/internal/procure/testutil"
)

func setupVendorTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewRegistrationService(repos.Vendor, repos.Company)
	h := NewVendorHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/vendors", h.ListVendors)
	api.GET("/vendors/:id", h.GetVendor)
	api.PUT("/vendors/:id", h.UpdateVendor)
	api.POST("/vendors/:id/approve", h.ApproveVendor)
	api.POST("/vendors/:id/reject", h.RejectVendor)
	api.PUT("/vendors/:id/certificate", h.UpdateCertificate)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestVendorApprove tests approving a pending vendor and the company link it
// creates
func TestVendorApprove(t *testing.T) {
	env := setupVendorTest(t)
	token := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-approve-0001", entity.VendorStatusPending)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/approve", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.VendorStatusApproved {
		t.Fatalf("expected status approved, got %v", data["status"])
	}
	if data["approved_by"] == nil || data["approved_at"] == nil {
		t.Fatal("expected approved_by and approved_at to be set")
	}

	// The approval must have created and linked a company record
	var company entity.Company
	if err := env.DB.Where("vendor_id = ?", vendor.ID).First(&company).Error; err != nil {
		t.Fatalf("expected a company linked to the vendor: %v", err)
	}
	if company.Name != vendor.CompanyName {
		t.Fatalf("expected company name %q, got %q", vendor.CompanyName, company.Name)
	}

	var updated entity.Vendor
	env.DB.Where("id = ?", vendor.ID).First(&updated)
	if updated.CompanyID == nil || *updated.CompanyID != company.ID {
		t.Fatal("expected vendor.company_id to point at the created company")
	}

	// Approving an already approved vendor is not a valid transition
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/approve", nil, token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for double approve, got %d: %s", w2.Code, w2.Body.String())
	}
}

// TestVendorApproveIdempotentCompany tests that re-approving a re-reviewed
// vendor reuses the existing company instead of creating a second one
func TestVendorApproveIdempotentCompany(t *testing.T) {
	env := setupVendorTest(t)
	token := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-idem-000001", entity.VendorStatusPending)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/approve", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Reject, then approve again
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/reject",
		map[string]interface{}{"reason": "missing GSTIN"}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 for reject, got %d: %s", w2.Code, w2.Body.String())
	}
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/approve", nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("expected 200 for re-approve, got %d: %s", w3.Code, w3.Body.String())
	}

	var count int64
	env.DB.Model(&entity.Company{}).Where("vendor_id = ?", vendor.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 company for the vendor, got %d", count)
	}

	resp := testutil.ParseResponse(w3)
	data := resp["data"].(map[string]interface{})
	if data["rejection_reason"] != "" {
		t.Fatalf("expected rejection reason cleared on approve, got %v", data["rejection_reason"])
	}
}

// TestVendorReject tests the rejection reason requirement
func TestVendorReject(t *testing.T) {
	env := setupVendorTest(t)
	token := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-reject-0001", entity.VendorStatusPending)

	// Reason is required
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/reject",
		map[string]interface{}{}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without reason, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/vendors/"+vendor.ID+"/reject",
		map[string]interface{}{"reason": "incomplete documents"}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	resp := testutil.ParseResponse(w2)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.VendorStatusRejected {
		t.Fatalf("expected status rejected, got %v", data["status"])
	}
	if data["rejection_reason"] != "incomplete documents" {
		t.Fatalf("expected stored rejection reason, got %v", data["rejection_reason"])
	}
}

// TestVendorProfileScoping tests that a vendor can only read its own profile
func TestVendorProfileScoping(t *testing.T) {
	env := setupVendorTest(t)

	mine := testutil.SeedVendor(t, env.DB, "vendor-scope-mine01", entity.VendorStatusApproved)
	other := testutil.SeedVendor(t, env.DB, "vendor-scope-other1", entity.VendorStatusApproved)

	token := testutil.VendorToken(mine.ID)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/vendors/"+mine.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for own profile, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/vendors/"+other.ID, nil, token)
	if w2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another vendor's profile, got %d: %s", w2.Code, w2.Body.String())
	}
}

// TestVendorCertificateStatus tests the certificate review endpoint
func TestVendorCertificateStatus(t *testing.T) {
	env := setupVendorTest(t)
	token := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-cert-000001", entity.VendorStatusApproved)

	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/vendors/"+vendor.ID+"/certificate",
		map[string]interface{}{"status": "shiny"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown certificate status, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/vendors/"+vendor.ID+"/certificate",
		map[string]interface{}{"status": entity.CertificateStatusApproved}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	resp := testutil.ParseResponse(w2)
	data := resp["data"].(map[string]interface{})
	if data["certificate_status"] != entity.CertificateStatusApproved {
		t.Fatalf("expected certificate approved, got %v", data["certificate_status"])
	}
}
