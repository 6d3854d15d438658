package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
)

// listColumns are the exported columns of the fertilization list.
var listColumns = []string{
	"Parcel", "Field", "Year", "Area", "Crop", "Fertilizer", "Measure", "Amount", "Month",
}

func (r Row) record() []string {
	return []string{
		r.Parcel,
		r.FieldName,
		strconv.Itoa(r.Year),
		r.Area.String(),
		r.CropName,
		r.FertilizerName,
		string(r.Measure),
		r.Amount.String(),
		strconv.Itoa(r.Month),
	}
}

// WriteCSV writes the fertilization list as CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(listColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExcel writes the fertilization list as a styled Excel sheet with a
// frozen, filterable header row.
func WriteExcel(w io.Writer, rows []Row) error {
	const sheet = "Fertilizations"
	file := excelize.NewFile()
	defer file.Close()
	file.SetSheetName("Sheet1", sheet)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F7942"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	for i, col := range listColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		file.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	file.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	for i, r := range rows {
		rowNum := i + 2
		values := []interface{}{
			r.Parcel, r.FieldName, r.Year, r.Area.InexactFloat64(),
			r.CropName, r.FertilizerName, string(r.Measure),
			r.Amount.InexactFloat64(), r.Month,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := file.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", rowNum, err)
			}
		}
	}

	if len(rows) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(listColumns))
		if err := file.AutoFilter(sheet, fmt.Sprintf("A1:%s1", lastCol), nil); err != nil {
			return fmt.Errorf("setting filter: %w", err)
		}
	}
	return file.Write(w)
}

// balanceTable flattens balances into rows for sheet exports.
func balanceTable(balances []balance.Balance) [][]string {
	table := make([][]string, 0, len(balances))
	for _, b := range balances {
		rounded := b.Round(0)
		table = append(table, []string{
			rounded.Title,
			rounded.N.String(), rounded.P2O5.String(), rounded.K2O.String(),
			rounded.MgO.String(), rounded.S.String(), rounded.CaO.String(),
			rounded.NH4.String(),
		})
	}
	return table
}
