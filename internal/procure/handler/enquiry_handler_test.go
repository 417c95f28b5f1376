package handler

import (
	"net/http"
	"testing"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/service"
	"github.com/procureflow/procureflow/internal/procure/testutil"
)

func setupEnquiryTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewEnquiryService(repos.Enquiry, repos.Vendor, repos.Component)
	h := NewEnquiryHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/enquiries", h.ListEnquiries)
	api.GET("/enquiries/:id", h.GetEnquiry)
	api.POST("/enquiries", h.CreateEnquiry)
	api.PUT("/enquiries/:id", h.UpdateEnquiry)
	api.POST("/enquiries/:id/reject", h.RejectEnquiry)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestEnquiryCreate tests raising an enquiry against an approved vendor
func TestEnquiryCreate(t *testing.T) {
	env := setupEnquiryTest(t)
	token := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-enq-00000001", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-enq-000000001", 100)

	body := map[string]interface{}{
		"vendor_id": vendor.ID,
		"notes":     "Q3 stock replenishment",
		"items": []map[string]interface{}{
			{"component_id": component.ID, "quantity": 50},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.EnquiryStatusPending {
		t.Fatalf("expected status pending, got %v", data["status"])
	}
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["unit"] != "pcs" {
		t.Fatalf("expected unit defaulted from component, got %v", item["unit"])
	}

	// Vendors can raise an enquiry for themselves; vendor_id is pinned to
	// their own profile regardless of the body
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", map[string]interface{}{
		"vendor_id": "some-other-vendor-01",
		"items":     []map[string]interface{}{{"component_id": component.ID, "quantity": 5}},
	}, testutil.VendorToken(vendor.ID))
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected 201 for vendor self-enquiry, got %d: %s", w2.Code, w2.Body.String())
	}
	if got := testutil.ParseResponse(w2)["data"].(map[string]interface{})["vendor_id"]; got != vendor.ID {
		t.Fatalf("expected vendor_id pinned to the caller, got %v", got)
	}
}

// TestEnquiryCreateGuards tests vendor approval and component review guards
func TestEnquiryCreateGuards(t *testing.T) {
	env := setupEnquiryTest(t)
	token := testutil.ManagerToken()

	pendingVendor := testutil.SeedVendor(t, env.DB, "vendor-enq-pending1", entity.VendorStatusPending)
	approvedVendor := testutil.SeedVendor(t, env.DB, "vendor-enq-approve1", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-enq-guard0001", 100)

	// Unapproved vendor cannot receive enquiries
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", map[string]interface{}{
		"vendor_id": pendingVendor.ID,
		"items":     []map[string]interface{}{{"component_id": component.ID, "quantity": 10}},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unapproved vendor, got %d: %s", w.Code, w.Body.String())
	}

	// Components still in review cannot be enquired about
	pendingComp := testutil.SeedComponent(t, env.DB, "comp-enq-review001", 100)
	env.DB.Model(&entity.Component{}).Where("id = ?", pendingComp.ID).
		Update("review_status", entity.ComponentReviewPending)

	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", map[string]interface{}{
		"vendor_id": approvedVendor.ID,
		"items":     []map[string]interface{}{{"component_id": pendingComp.ID, "quantity": 10}},
	}, token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unreviewed component, got %d: %s", w2.Code, w2.Body.String())
	}

	// Quantity must be positive
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", map[string]interface{}{
		"vendor_id": approvedVendor.ID,
		"items":     []map[string]interface{}{{"component_id": component.ID, "quantity": -5}},
	}, token)
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d: %s", w3.Code, w3.Body.String())
	}
}

// TestEnquiryRejectAndReopen tests the vendor rejection and the reopen on
// edit
func TestEnquiryRejectAndReopen(t *testing.T) {
	env := setupEnquiryTest(t)
	managerToken := testutil.ManagerToken()

	vendor := testutil.SeedVendor(t, env.DB, "vendor-enq-reopen01", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-enq-reopen001", 100)
	vendorToken := testutil.VendorToken(vendor.ID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", map[string]interface{}{
		"vendor_id": vendor.ID,
		"items":     []map[string]interface{}{{"component_id": component.ID, "quantity": 20}},
	}, managerToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	enquiryID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// Vendor declines to quote
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries/"+enquiryID+"/reject",
		map[string]interface{}{"reason": "cannot meet the quantity"}, vendorToken)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 for reject, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data2["status"] != entity.EnquiryStatusRejected {
		t.Fatalf("expected status rejected, got %v", data2["status"])
	}

	// Another vendor cannot reject it
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries/"+enquiryID+"/reject",
		map[string]interface{}{"reason": "not mine"}, testutil.VendorToken("someone-else-0000001"))
	if w3.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign vendor, got %d: %s", w3.Code, w3.Body.String())
	}

	// Editing the rejected enquiry reopens it and clears the reason
	w4 := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/enquiries/"+enquiryID,
		map[string]interface{}{
			"notes": "halved the quantity",
			"items": []map[string]interface{}{{"component_id": component.ID, "quantity": 10}},
		}, managerToken)
	if w4.Code != http.StatusOK {
		t.Fatalf("expected 200 for reopen edit, got %d: %s", w4.Code, w4.Body.String())
	}
	data4 := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if data4["status"] != entity.EnquiryStatusPending {
		t.Fatalf("expected status pending after edit, got %v", data4["status"])
	}
	if data4["rejection_reason"] != "" {
		t.Fatalf("expected rejection reason cleared, got %v", data4["rejection_reason"])
	}
	items := data4["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected items replaced wholesale, got %d", len(items))
	}
	if qty := items[0].(map[string]interface{})["quantity"].(float64); qty != 10 {
		t.Fatalf("expected replaced quantity 10, got %v", qty)
	}
}

// TestEnquiryVendorListScoping tests that vendor tokens only see their own
// enquiries
func TestEnquiryVendorListScoping(t *testing.T) {
	env := setupEnquiryTest(t)
	managerToken := testutil.ManagerToken()

	vendorA := testutil.SeedVendor(t, env.DB, "vendor-enq-scope-a1", entity.VendorStatusApproved)
	vendorB := testutil.SeedVendor(t, env.DB, "vendor-enq-scope-b1", entity.VendorStatusApproved)
	component := testutil.SeedComponent(t, env.DB, "comp-enq-scope0001", 100)

	for _, v := range []string{vendorA.ID, vendorB.ID} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/enquiries", map[string]interface{}{
			"vendor_id": v,
			"items":     []map[string]interface{}{{"component_id": component.ID, "quantity": 5}},
		}, managerToken)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	// Vendor A sees one enquiry even when asking for vendor B's
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/enquiries?vendor_id="+vendorB.ID, nil,
		testutil.VendorToken(vendorA.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 enquiry for vendor A, got %d", len(items))
	}
	if got := items[0].(map[string]interface{})["vendor_id"]; got != vendorA.ID {
		t.Fatalf("expected vendor A's enquiry, got vendor %v", got)
	}

	// The manager sees both
	w2 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/enquiries", nil, managerToken)
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if got := len(data2["items"].([]interface{})); got != 2 {
		t.Fatalf("expected 2 enquiries for the manager, got %d", got)
	}
}
