package export

import (
	"fmt"
	"io"

	"hotelier/internal/models"

	"github.com/xuri/excelize/v2"
)

var invoiceColumns = []string{
	"Invoice ID", "Number", "Reservation ID", "Issue Date",
	"Nights Stayed", "Price Per Night", "Total Amount",
}

// WriteInvoices renders the invoices as an Excel workbook on w.
func WriteInvoices(w io.Writer, invoices []models.Invoice) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Invoices"
	file.SetSheetName("Sheet1", sheet)

	for i, col := range invoiceColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(invoiceColumns), 1)
		_ = file.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, inv := range invoices {
		row := []interface{}{
			inv.ID,
			inv.Number,
			inv.ReservationID,
			inv.IssueDate.Format("2006-01-02"),
			inv.NightsStayed,
			inv.RoomPricePerNight,
			inv.TotalAmount,
		}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
