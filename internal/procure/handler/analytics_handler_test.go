package handler

import (
	"net/http"
	"testing"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/service"
	"github.com/procureflow/procureflow/internal/procure/testutil"
)

func setupAnalyticsTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewAnalyticsService(repos.Analytics, nil)
	h := NewAnalyticsHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/analytics/dashboard", h.Dashboard)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestDashboardRefresh tests that a refreshed dashboard picks up new pipeline
// rows
func TestDashboardRefresh(t *testing.T) {
	env := setupAnalyticsTest(t)
	token := testutil.ManagerToken()

	testutil.SeedVendor(t, env.DB, "vendor-dash-h00001", entity.VendorStatusPending)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/dashboard", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if got := data["vendors_pending"].(float64); got != 1 {
		t.Fatalf("expected 1 pending vendor, got %v", got)
	}

	testutil.SeedVendor(t, env.DB, "vendor-dash-h00002", entity.VendorStatusPending)

	w2 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/dashboard?refresh=1", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if got := data2["vendors_pending"].(float64); got != 2 {
		t.Fatalf("expected 2 pending vendors after refresh, got %v", got)
	}
}
