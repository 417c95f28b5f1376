package service

import (
	"context"
	"fmt"
	"time"

	"github.com/procureflow/procureflow/internal/procure/entity"
	"github.com/procureflow/procureflow/internal/procure/repository"
	"github.com/xuri/excelize/v2"
)

var orderExportHeaders = []string{
	"Order Code", "Vendor", "Status", "Total Amount", "Advance Amount",
	"Final Amount", "Created At", "Notes",
}

// ExportService xlsx exports for the order book.
type ExportService struct {
	orderRepo *repository.OrderRepository
}

func NewExportService(orderRepo *repository.OrderRepository) *ExportService {
	return &ExportService{orderRepo: orderRepo}
}

// ExportOrders renders the filtered order list to a workbook.
func (s *ExportService) ExportOrders(ctx context.Context, filters map[string]string) (*excelize.File, string, error) {
	orders, _, err := s.orderRepo.FindAll(ctx, 1, 10000, filters)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range orderExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalValue float64
	for rowIdx, order := range orders {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), order.OrderCode)
		vendorName := order.VendorID
		if order.Vendor != nil {
			vendorName = order.Vendor.CompanyName
		}
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), vendorName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), order.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), order.TotalAmount)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), order.AdvanceAmount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), order.FinalAmount)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), order.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), order.Notes)
		if order.Status != entity.OrderStatusCancelled {
			totalValue += order.TotalAmount
		}
	}

	summaryRow := len(orders) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d orders", len(orders)))
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), totalValue)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	colWidths := []float64{16, 24, 14, 14, 14, 14, 18, 30}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}
