// Package ingest turns messy library workbooks into catalog rows. The
// pipeline classifies sheets, probes for the real header row, resolves
// each sheet's category, maps columns to catalog roles, and synthesizes
// stable book identifiers before handing rows to the store.
package ingest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrWorkbookUnreadable indicates the uploaded file could not be opened
// as a spreadsheet at all.
var ErrWorkbookUnreadable = errors.New("workbook unreadable")

// SheetSkip records one sheet the importer passed over and why.
type SheetSkip struct {
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

// RowError records one row that failed to insert.
type RowError struct {
	Sheet string `json:"sheet"`
	Row   int    `json:"row"` // 1-based workbook row
	Err   string `json:"error"`
}

// Report summarizes one import run.
type Report struct {
	RunID         uuid.UUID   `json:"run_id"`
	Imported      int         `json:"imported"`
	Titleless     int         `json:"titleless"`
	SkippedSheets []SheetSkip `json:"skipped_sheets"`
	RowErrors     []RowError  `json:"row_errors"`
}

// Context carries the mutable state shared across every sheet of one
// import run: the identifiers already taken (catalog plus earlier rows
// of this run), the category taxonomy, and the unknown-id counter.
type Context struct {
	taken          map[string]struct{}
	Taxonomy       map[string]string
	unknownCounter int
}

// NewContext seeds the taken-identifier set from the existing catalog.
func NewContext(existingIDs []string, taxonomy map[string]string) *Context {
	taken := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		taken[id] = struct{}{}
	}
	return &Context{taken: taken, Taxonomy: taxonomy, unknownCounter: 1}
}

// Taken reports whether an identifier is already in use.
func (c *Context) Taken(id string) bool {
	_, ok := c.taken[id]
	return ok
}

// Claim marks an identifier as used for the rest of the run.
func (c *Context) Claim(id string) {
	c.taken[id] = struct{}{}
}

// NextUnknown returns the next free placeholder identifier.
func (c *Context) NextUnknown() string {
	for {
		id := fmt.Sprintf("UNKNOWN_%d", c.unknownCounter)
		c.unknownCounter++
		if !c.Taken(id) {
			return id
		}
	}
}
