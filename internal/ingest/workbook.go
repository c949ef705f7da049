package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is a parsed spreadsheet with its sheets classified.
type Workbook struct {
	file          *excelize.File
	TaxonomySheet string   // the taxonomy sheet, if any
	DataSheets    []string // every other non-excluded sheet, in workbook order
}

// OpenWorkbook parses an uploaded xlsx stream and classifies its sheets.
// A sheet is the taxonomy sheet when its name is in the excluded list or
// contains "Categories" or "Key"; only the first such sheet counts.
func OpenWorkbook(r io.Reader, excluded []string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}

	wb := &Workbook{file: f}
	for _, name := range f.GetSheetList() {
		if wb.TaxonomySheet == "" && isTaxonomySheet(name, excluded) {
			wb.TaxonomySheet = name
			continue
		}
		if isExcluded(name, excluded) {
			continue
		}
		wb.DataSheets = append(wb.DataSheets, name)
	}
	return wb, nil
}

func isExcluded(name string, excluded []string) bool {
	for _, e := range excluded {
		if name == e {
			return true
		}
	}
	return false
}

func isTaxonomySheet(name string, excluded []string) bool {
	return isExcluded(name, excluded) ||
		strings.Contains(name, "Categories") ||
		strings.Contains(name, "Key")
}

// Rows returns the sheet's cell matrix. Ragged rows are returned as-is;
// callers index through cellAt.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.file.GetRows(sheet)
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
