// Package catalog provides the catalog store and lending ledger for the
// library system. It owns the books and loans tables and enforces the
// copies/status invariant on every mutation. The package has no UI
// dependencies and can be used by web handlers, CLI tools, or tests.
package catalog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Status describes a book's copy pool.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusFullyIssued Status = "Fully Issued"
)

// statusFor derives the status from the available-copy count.
// Status is a pure function of available_copies.
func statusFor(available int) Status {
	if available > 0 {
		return StatusAvailable
	}
	return StatusFullyIssued
}

// Book is a catalog record. BookID is globally unique and immutable once
// assigned. AvailableCopies is always total minus outstanding loans.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	YearPublished   int    `json:"year_published"` // 0 = unknown
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	Status          Status `json:"status"`
}

// BookFields carries the caller-editable attributes of a book.
type BookFields struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	YearPublished int    `json:"year_published"`
	Category      string `json:"category"`
	TotalCopies   int    `json:"total_copies"`
}

// Loan is one borrow event against a book. IDs are dense sequential
// integers and are renumbered after any deletion so no gaps remain.
type Loan struct {
	ID             int        `json:"id"`
	BookID         string     `json:"book_id"`
	BookTitle      string     `json:"book_title,omitempty"`
	BorrowerName   string     `json:"borrower_name"`
	ContactNumber  string     `json:"contact_number"`
	Email          string     `json:"email"`
	Gender         string     `json:"gender"`
	Classification string     `json:"classification"`
	BorrowedAt     time.Time  `json:"borrowed_at"`
	ReturnedAt     *time.Time `json:"returned_at,omitempty"`
}

// Outstanding reports whether the loan has not been returned yet.
func (l *Loan) Outstanding() bool { return l.ReturnedAt == nil }

// BorrowerFields carries the borrower details recorded with a loan.
type BorrowerFields struct {
	Name           string `json:"name"`
	ContactNumber  string `json:"contact_number"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	Classification string `json:"classification"`
}

// Classifications recognized as fixed choices; anything else is kept as a
// free-text "other" value.
var Classifications = []string{"Student", "Faculty", "REPS"}

// DateFilter restricts loan listings by borrow date.
type DateFilter string

const (
	FilterAll   DateFilter = ""
	FilterToday DateFilter = "today"
	FilterWeek  DateFilter = "week" // last 7 days inclusive
	FilterMonth DateFilter = "month"
)

// StatusFilter restricts loan listings by return status.
type StatusFilter string

const (
	StatusAny         StatusFilter = ""
	StatusReturned    StatusFilter = "returned"
	StatusOutstanding StatusFilter = "outstanding"
)

// Stats aggregates the dashboard counters.
type Stats struct {
	TotalCopies           int            `json:"total_copies"`
	OutstandingLoans      int            `json:"outstanding_loans"`
	ByClassification      map[string]int `json:"by_classification"`
	LoansByCategory       map[string]int `json:"loans_by_category"`
	LoansByClassification map[string]int `json:"loans_by_classification"`
}
