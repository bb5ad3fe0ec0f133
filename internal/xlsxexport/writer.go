package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bananabill/internal/domain"
)

const sheetName = "Monthly Report"

// WriteMonthlyReport renders a monthly report as an xlsx workbook: a summary
// block, the farmer-wise rollup, and the full bill list.
func WriteMonthlyReport(w io.Writer, report *domain.MonthlyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	row := 1
	set := func(col string, r int, value interface{}) {
		_ = f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, r), value)
	}

	set("A", row, fmt.Sprintf("%s %d", report.MonthName, report.Year))
	row += 2
	set("A", row, "Total Bills")
	set("B", row, report.TotalBills)
	row++
	set("A", row, "Total Amount")
	set("B", row, report.TotalAmount)
	row++
	set("A", row, "Average Amount")
	set("B", row, report.AverageAmount)
	row++
	set("A", row, "Total Weight (kg)")
	set("B", row, report.TotalWeight)
	row += 2

	set("A", row, "Farmer")
	set("B", row, "Mobile")
	set("C", row, "Bills")
	set("D", row, "Total Weight (kg)")
	set("E", row, "Total Amount")
	row++
	for _, ft := range report.Farmers {
		set("A", row, ft.Name)
		set("B", row, ft.Mobile)
		set("C", row, ft.BillCount)
		set("D", row, ft.TotalWeight)
		set("E", row, ft.TotalAmount)
		row++
	}
	row++

	set("A", row, "Bill Number")
	set("B", row, "Date")
	set("C", row, "Farmer")
	set("D", row, "Final Net Weight (kg)")
	set("E", row, "Rate")
	set("F", row, "Total Amount")
	set("G", row, "Net Amount")
	set("H", row, "Status")
	row++
	for i := range report.Bills {
		b := &report.Bills[i]
		set("A", row, b.BillNumber)
		set("B", row, b.CreatedAt.Format("2006-01-02"))
		if b.Farmer != nil {
			set("C", row, b.Farmer.Name)
		}
		set("D", row, b.FinalNetWeight)
		set("E", row, b.RatePerKg)
		set("F", row, b.TotalAmount)
		set("G", row, b.NetAmount)
		set("H", row, string(b.PaymentStatus))
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
