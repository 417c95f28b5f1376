package service

import (
	"context"
	"strings"
	"testing"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/procureflow/procureflow/internal/procure/testutil"
)

// TestExportOrders tests the workbook layout and the cancelled-order
// exclusion in the summary
func TestExportOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewExportService(repos.Order)

	vendor := testutil.SeedVendor(t, db, "vendor-export-0001", entity.VendorStatusApproved)

	orders := []entity.PurchaseOrder{
		{ID: "ord-export-000001", OrderCode: "ORD-2026-8001", LOIID: "loi-x1", VendorID: vendor.ID, TotalAmount: 1062, AdvanceAmount: 318.6, FinalAmount: 743.4, Status: entity.OrderStatusConfirmed},
		{ID: "ord-export-000002", OrderCode: "ORD-2026-8002", LOIID: "loi-x2", VendorID: vendor.ID, TotalAmount: 400, Status: entity.OrderStatusCancelled},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("Failed to seed order: %v", err)
		}
	}

	f, filename, err := svc.ExportOrders(context.Background(), map[string]string{})
	if err != nil {
		t.Fatalf("ExportOrders failed: %v", err)
	}
	defer f.Close()

	if !strings.HasPrefix(filename, "orders_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Fatalf("unexpected filename %q", filename)
	}

	sheet := "Orders"
	if got, _ := f.GetCellValue(sheet, "A1"); got != "Order Code" {
		t.Fatalf("expected header in A1, got %q", got)
	}

	// Both orders are listed; the vendor column resolves the company name
	codes := map[string]bool{}
	for _, row := range []string{"2", "3"} {
		code, _ := f.GetCellValue(sheet, "A"+row)
		codes[code] = true
		vendorName, _ := f.GetCellValue(sheet, "B"+row)
		if vendorName != vendor.CompanyName {
			t.Fatalf("expected vendor name %q in row %s, got %q", vendor.CompanyName, row, vendorName)
		}
	}
	if !codes["ORD-2026-8001"] || !codes["ORD-2026-8002"] {
		t.Fatalf("expected both order codes in the sheet, got %v", codes)
	}

	// Summary row: count includes the cancelled order, the value does not
	if got, _ := f.GetCellValue(sheet, "A4"); got != "Total" {
		t.Fatalf("expected summary label in A4, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "B4"); got != "2 orders" {
		t.Fatalf("expected order count in B4, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "D4"); got != "1062" {
		t.Fatalf("expected cancelled order excluded from the total, got %q", got)
	}
}
