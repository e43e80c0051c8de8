package infra

// export.go renders the inventory report downloads: CSV for spreadsheets and a
// landscape A4 PDF built with go-pdf/fpdf.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/go-pdf/fpdf"
)

var exportHeader = []string{"ID", "Product Name", "Category", "Stock", "Status"}

func exportRow(p *model.Product) []string {
	category := p.CategoryName()
	if category == "" {
		category = "Uncategorized"
	}
	return []string{
		p.ID.String(),
		p.Name,
		category,
		strconv.Itoa(p.StockQty),
		string(p.Status),
	}
}

// WriteInventoryCSV writes one header row followed by one row per product.
func WriteInventoryCSV(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("csv: header: %w", err)
	}
	for i := range products {
		if err := cw.Write(exportRow(&products[i])); err != nil {
			return fmt.Errorf("csv: row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteInventoryPDF renders the inventory as a titled grid table.
func WriteInventoryPDF(w io.Writer, products []model.Product, generatedAt time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Inventory Management Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Generated on: "+generatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Table ────────────────────────────────────────────────────────────────
	widths := []float64{contentW * 0.30, contentW * 0.28, contentW * 0.18, contentW * 0.09, contentW * 0.15}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range exportHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for i := range products {
		row := exportRow(&products[i])
		for j, cell := range row {
			align := "L"
			if j == 3 {
				align = "R"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}
