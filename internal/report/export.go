// Package report renders loan listings as downloadable spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cisclib/librarian/internal/catalog"
)

// exportColumns is the fixed header row of a loan export, one column per
// ledger field in the order librarians expect.
var exportColumns = []string{
	"Borrower ID", "Book ID", "Book Title", "Borrower Name", "Contact",
	"Email", "Gender", "Classification", "Date Borrowed", "Date Returned",
}

const exportSheet = "Loans"

// timeLayout formats loan timestamps in the export.
const timeLayout = "2006-01-02 15:04:05"

// WriteLoans writes the loans as an xlsx workbook to w. An outstanding
// loan gets an empty Date Returned cell.
func WriteLoans(w io.Writer, loans []*catalog.Loan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, l := range loans {
		row := []interface{}{
			l.ID, l.BookID, l.BookTitle, l.BorrowerName, l.ContactNumber,
			l.Email, l.Gender, l.Classification,
			formatTime(l.BorrowedAt), formatReturned(l.ReturnedAt),
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, start, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Filename builds a timestamped download name for an export.
func Filename(now time.Time) string {
	return "loans_" + now.Format("20060102_150405") + ".xlsx"
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func formatReturned(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
