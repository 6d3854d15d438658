package reports

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
	"github.com/broxB/AgroPlan-sub000/internal/field"
)

// balanceColumns head the nutrient columns of the balance sheet.
var balanceColumns = []string{"", "N", "P2O5", "K2O", "MgO", "S", "CaO", "NH4"}

// WriteBalancePDF renders the balance sheet of one field snapshot: the
// per-crop balances, the category balances and the total, one table row
// each, with all values rounded to whole kg/ha.
func WriteBalancePDF(w io.Writer, f *field.Field) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := fmt.Sprintf("%s %d", f.BaseField().Name, f.Year())
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	subtitle := fmt.Sprintf("%s, %s ha", f.FieldType(), f.Record().Area)
	pdf.CellFormat(0, 8, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	titleWidth := 70.0
	colWidth := (267.0 - titleWidth) / float64(len(balanceColumns)-1)

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(79, 121, 66)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range balanceColumns {
			width := colWidth
			if i == 0 {
				width = titleWidth
			}
			pdf.CellFormat(width, 8, col, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 10)
	}
	writeRows := func(table [][]string) {
		for _, row := range table {
			pdf.CellFormat(titleWidth, 7, row[0], "1", 0, "L", false, 0, "")
			for _, cell := range row[1:] {
				pdf.CellFormat(colWidth, 7, cell, "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Crop balances", "", 1, "L", false, 0, "")
	writeHeader()
	writeRows(balanceTable(f.CropBalances()))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Applications and reductions", "", 1, "L", false, 0, "")
	writeHeader()
	writeRows(balanceTable(f.CategoryBalances()))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Total", "", 1, "L", false, 0, "")
	writeHeader()
	total := f.TotalBalance()
	pdf.SetFont("Arial", "B", 10)
	writeRows(balanceTable([]balance.Balance{total}))

	return pdf.Output(w)
}
