package rename

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Renames"

var reportHeaders = []string{
	"Original",
	"Action",
	"New Name",
	"Date",
	"Credit Card",
	"Vendor",
	"Account Number",
	"Invoice Number",
	"Extraction Failed",
}

// WriteReport saves the outcomes of a run as an XLSX workbook at path
func WriteReport(path string, summary *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(reportSheet, cell, h)
	}

	for i, o := range summary.Outcomes {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(reportSheet, cell, v)
		}

		write(1, o.Original)
		write(2, string(o.Action))
		write(3, o.Renamed)
		write(4, o.Fields.Date)
		write(5, o.Fields.CreditCard)
		write(6, o.Fields.Vendor)
		write(7, o.Fields.AccountNumber)
		write(8, o.Fields.InvoiceNumber)
		write(9, o.ExtractionFailed)
	}

	_ = f.SetColWidth(reportSheet, "A", "A", 40)
	_ = f.SetColWidth(reportSheet, "C", "C", 50)

	props := &excelize.DocProperties{
		Title:       "parkive rename " + summary.RunID,
		Description: fmt.Sprintf("%s, %s", summary.Dir, summary.StartedAt.Format("2006-01-02 15:04:05")),
	}
	if err := f.SetDocProps(props); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}
