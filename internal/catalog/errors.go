package catalog

import "errors"

// Sentinel errors for the store and ledger. Callers match them with
// errors.Is; the web layer maps them to HTTP statuses.
var (
	// ErrNotFound means the referenced book or loan does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID means a book with the given identifier already exists.
	ErrDuplicateID = errors.New("book id already exists")

	// ErrNoCopiesAvailable means a borrow was attempted with no free copies.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrAlreadyReturned means the loan has a returned timestamp and is
	// immutable.
	ErrAlreadyReturned = errors.New("loan already returned")

	// ErrAllCopiesAvailable guards against over-returning: every copy of
	// the book is already on the shelf.
	ErrAllCopiesAvailable = errors.New("all copies already available")

	// ErrBelowOutstandingLoans means a resize would drop total copies
	// below the number currently out on loan.
	ErrBelowOutstandingLoans = errors.New("total copies below outstanding loans")

	// ErrInvalidEmail means the borrower email fails the address check.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPhone means the contact number fails the digit-count check.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrMissingField means a required text field was blank.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidYear means the publication year is neither 0 nor four digits.
	ErrInvalidYear = errors.New("year must be 0 or a 4-digit year")

	// ErrInvalidCopies means the copy count is not a positive integer.
	ErrInvalidCopies = errors.New("total copies must be at least 1")
)
