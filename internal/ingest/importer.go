package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cisclib/librarian/internal/catalog"
	"github.com/cisclib/librarian/internal/config"
)

// Importer runs workbook imports against the catalog store.
type Importer struct {
	store  *catalog.Store
	cfg    config.ImportConfig
	logger *slog.Logger
}

// NewImporter wires an importer to the store.
func NewImporter(store *catalog.Store, cfg config.ImportConfig, logger *slog.Logger) *Importer {
	return &Importer{store: store, cfg: cfg, logger: logger}
}

// Run imports one workbook. All sheets run inside a single transaction
// with a savepoint per row, so one bad row never takes down the run but
// a failed commit leaves the catalog untouched. The returned Report is
// non-nil whenever the workbook itself could be opened.
func (imp *Importer) Run(ctx context.Context, r io.Reader) (*Report, error) {
	runID := uuid.New()
	log := imp.logger.With("run_id", runID)

	wb, err := OpenWorkbook(r, imp.cfg.ExcludedSheets)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	taxonomy := imp.loadTaxonomy(wb, log)

	existing, err := imp.store.BookIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing ids: %w", err)
	}
	runCtx := NewContext(existing, taxonomy)

	report := &Report{RunID: runID, SkippedSheets: []SheetSkip{}, RowErrors: []RowError{}}

	tx, err := imp.store.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, sheet := range wb.DataSheets {
		rows, err := wb.Rows(sheet)
		if err != nil {
			report.SkippedSheets = append(report.SkippedSheets,
				SheetSkip{Sheet: sheet, Reason: "unreadable: " + err.Error()})
			log.Warn("skipping unreadable sheet", "sheet", sheet, "error", err)
			continue
		}
		if len(rows) == 0 {
			report.SkippedSheets = append(report.SkippedSheets,
				SheetSkip{Sheet: sheet, Reason: "empty sheet"})
			continue
		}

		headerRow := locateHeader(rows, imp.cfg.HeaderProbeRows)
		cat := ResolveCategory(sheet, rows, headerRow, taxonomy)

		cols, ok := MapColumns(rows[headerRow], cat.Code)
		if !ok {
			report.SkippedSheets = append(report.SkippedSheets,
				SheetSkip{Sheet: sheet, Reason: "no identifier column"})
			log.Warn("skipping sheet without identifier column", "sheet", sheet)
			continue
		}

		log.Info("importing sheet",
			"sheet", sheet,
			"header_row", headerRow,
			"category_code", cat.Code,
			"category_name", cat.Name)

		imp.importSheet(ctx, tx, sheet, rows[headerRow+1:], headerRow+1, cat, cols, runCtx, report, log)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	imp.store.Events().Publish(catalog.Event{Kind: catalog.EventBookChanged})

	log.Info("import complete",
		"imported", report.Imported,
		"titleless", report.Titleless,
		"skipped_sheets", len(report.SkippedSheets),
		"row_errors", len(report.RowErrors))
	return report, nil
}

// loadTaxonomy parses the workbook's taxonomy sheet, falling back to the
// built-in table when the sheet is absent or unreadable.
func (imp *Importer) loadTaxonomy(wb *Workbook, log *slog.Logger) map[string]string {
	if wb.TaxonomySheet != "" {
		rows, err := wb.Rows(wb.TaxonomySheet)
		if err == nil {
			if tax := parseTaxonomy(rows, imp.cfg.TaxonomyProbeRows); tax != nil {
				log.Info("loaded taxonomy sheet", "sheet", wb.TaxonomySheet, "entries", len(tax))
				return tax
			}
		}
		log.Warn("taxonomy sheet unusable, using built-in table", "sheet", wb.TaxonomySheet)
	}
	return FallbackTaxonomy()
}

// importSheet inserts one sheet's data rows. rowOffset is the workbook
// index of the first data row, used for 1-based row numbers in errors.
func (imp *Importer) importSheet(ctx context.Context, tx pgx.Tx, sheet string,
	rows [][]string, rowOffset int, cat Category, cols ColumnMap,
	runCtx *Context, report *Report, log *slog.Logger) {

	for i, row := range rows {
		book, titleless, skip := buildBook(runCtx, cat, cols, row)
		if skip {
			continue
		}
		if titleless {
			report.Titleless++
		}

		if err := imp.insertRow(ctx, tx, book); err != nil {
			report.RowErrors = append(report.RowErrors, RowError{
				Sheet: sheet,
				Row:   rowOffset + i + 1,
				Err:   err.Error(),
			})
			log.Warn("row failed", "sheet", sheet, "row", rowOffset+i+1, "error", err)
			continue
		}
		report.Imported++
	}
}

// buildBook assembles one catalog record from a sheet row. skip is true
// for blank rows and for repeated header rows whose title cell is the
// literal word "title". A row with no usable title gets a placeholder
// title embedding its identifier and reports titleless. Available copies
// always start equal to total copies; no loans exist at import time.
func buildBook(runCtx *Context, cat Category, cols ColumnMap, row []string) (book catalog.Book, titleless, skip bool) {
	if rowEmpty(row) {
		return catalog.Book{}, false, true
	}

	title := cleanCell(cellAt(row, cols.Title))
	if isTitleEcho(title) {
		return catalog.Book{}, false, true
	}

	copies := normalizeCopies(cellAt(row, cols.Copies))
	book = catalog.Book{
		ID:              SynthesizeID(runCtx, cat.Code, cellAt(row, cols.ID)),
		Title:           title,
		Author:          normalizeText(cellAt(row, cols.Author)),
		YearPublished:   normalizeYear(cellAt(row, cols.Year)),
		Category:        cat.Name,
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	book.Status = catalog.StatusAvailable
	if copies <= 0 {
		book.Status = catalog.StatusFullyIssued
	}
	if book.Title == "" {
		book.Title = placeholderTitle(book.ID)
		titleless = true
	}
	return book, titleless, false
}

// insertRow inserts one book under a savepoint so a constraint failure
// only loses that row.
func (imp *Importer) insertRow(ctx context.Context, tx pgx.Tx, book catalog.Book) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := imp.store.InsertBookTx(ctx, sp, book); err != nil {
		sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

// rowEmpty reports whether every cell in the row is blank.
func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cleanCell(cell) != "" {
			return false
		}
	}
	return true
}
