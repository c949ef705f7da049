package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `l.loan_id, l.book_id, b.title, l.borrower_name, l.contact_number,
	l.email, l.gender, l.classification, l.borrowed_at, l.returned_at`

func scanLoan(row pgx.Row) (*Loan, error) {
	var l Loan
	err := row.Scan(&l.ID, &l.BookID, &l.BookTitle, &l.BorrowerName, &l.ContactNumber,
		&l.Email, &l.Gender, &l.Classification, &l.BorrowedAt, &l.ReturnedAt)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &l, nil
}

// Borrow records a new outstanding loan and decrements the book's
// available copies. Fails with ErrNoCopiesAvailable when the book is
// fully issued.
func (s *Store) Borrow(ctx context.Context, bookID string, f BorrowerFields) (int, error) {
	if err := ValidateBorrower(f); err != nil {
		return 0, err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var total, available int
	err = tx.QueryRow(ctx,
		`SELECT total_copies, available_copies FROM books WHERE book_id = $1 FOR UPDATE`, bookID).
		Scan(&total, &available)
	if err != nil {
		return 0, wrapNoRows(err)
	}

	newAvailable, status, err := borrowTransition(available)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE books SET available_copies = $2, status = $3 WHERE book_id = $1`,
		bookID, newAvailable, status)
	if err != nil {
		return 0, fmt.Errorf("update availability: %w", err)
	}

	// Loan ids stay dense: the next id is one past the current maximum.
	var loanID int
	err = tx.QueryRow(ctx, `
		INSERT INTO loans (loan_id, book_id, borrower_name, contact_number, email, gender, classification, borrowed_at)
		VALUES ((SELECT COALESCE(MAX(loan_id), 0) + 1 FROM loans), $1, $2, $3, $4, $5, $6, $7)
		RETURNING loan_id`,
		bookID, f.Name, f.ContactNumber, f.Email, f.Gender, f.Classification, time.Now().UTC()).
		Scan(&loanID)
	if err != nil {
		return 0, fmt.Errorf("insert loan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	s.events.Publish(Event{Kind: EventBookChanged, BookID: bookID})
	s.events.Publish(Event{Kind: EventLoanChanged, BookID: bookID, LoanID: loanID})
	return loanID, nil
}

// Return marks a loan returned and restores the book's available copy.
// A loan already returned fails with ErrAlreadyReturned; restoring past
// the total copy count fails with ErrAllCopiesAvailable.
func (s *Store) Return(ctx context.Context, loanID int) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var bookID string
	var returnedAt *time.Time
	err = tx.QueryRow(ctx,
		`SELECT book_id, returned_at FROM loans WHERE loan_id = $1 FOR UPDATE`, loanID).
		Scan(&bookID, &returnedAt)
	if err != nil {
		return wrapNoRows(err)
	}
	if returnedAt != nil {
		return ErrAlreadyReturned
	}

	var total, available int
	err = tx.QueryRow(ctx,
		`SELECT total_copies, available_copies FROM books WHERE book_id = $1 FOR UPDATE`, bookID).
		Scan(&total, &available)
	if err != nil {
		return wrapNoRows(err)
	}

	newAvailable, status, err := returnTransition(available, total)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE loans SET returned_at = $2 WHERE loan_id = $1`,
		loanID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE books SET available_copies = $2, status = $3 WHERE book_id = $1`,
		bookID, newAvailable, status)
	if err != nil {
		return fmt.Errorf("restore availability: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.events.Publish(Event{Kind: EventBookChanged, BookID: bookID})
	s.events.Publish(Event{Kind: EventLoanChanged, BookID: bookID, LoanID: loanID})
	return nil
}

// UpdateLoanBorrower edits the borrower details of an outstanding loan.
// Returned loans are historical records and stay immutable.
func (s *Store) UpdateLoanBorrower(ctx context.Context, loanID int, f BorrowerFields) error {
	if err := ValidateBorrower(f); err != nil {
		return err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var returnedAt *time.Time
	err = tx.QueryRow(ctx,
		`SELECT returned_at FROM loans WHERE loan_id = $1 FOR UPDATE`, loanID).
		Scan(&returnedAt)
	if err != nil {
		return wrapNoRows(err)
	}
	if returnedAt != nil {
		return ErrAlreadyReturned
	}

	_, err = tx.Exec(ctx, `
		UPDATE loans
		SET borrower_name = $2, contact_number = $3, email = $4, gender = $5, classification = $6
		WHERE loan_id = $1`,
		loanID, f.Name, f.ContactNumber, f.Email, f.Gender, f.Classification)
	if err != nil {
		return fmt.Errorf("update borrower: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.events.Publish(Event{Kind: EventLoanChanged, LoanID: loanID})
	return nil
}

// DeleteLoan removes a loan record. Deleting an outstanding loan
// restores the book's available copy so the ledger stays consistent
// with the outstanding count. Remaining loans are renumbered densely.
func (s *Store) DeleteLoan(ctx context.Context, loanID int) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var bookID string
	var returnedAt *time.Time
	err = tx.QueryRow(ctx,
		`SELECT book_id, returned_at FROM loans WHERE loan_id = $1 FOR UPDATE`, loanID).
		Scan(&bookID, &returnedAt)
	if err != nil {
		return wrapNoRows(err)
	}

	if returnedAt == nil {
		var total, available int
		err = tx.QueryRow(ctx,
			`SELECT total_copies, available_copies FROM books WHERE book_id = $1 FOR UPDATE`, bookID).
			Scan(&total, &available)
		if err != nil {
			return wrapNoRows(err)
		}
		newAvailable, status, err := returnTransition(available, total)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE books SET available_copies = $2, status = $3 WHERE book_id = $1`,
			bookID, newAvailable, status)
		if err != nil {
			return fmt.Errorf("restore availability: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1`, loanID); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if err := renumberLoans(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.events.Publish(Event{Kind: EventBookChanged, BookID: bookID})
	s.events.Publish(Event{Kind: EventLoanChanged, BookID: bookID})
	return nil
}

// renumberLoans reassigns loan ids to 1..n in ascending id order. The
// negation step sidesteps primary-key collisions mid-update.
func renumberLoans(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `UPDATE loans SET loan_id = -loan_id`); err != nil {
		return fmt.Errorf("renumber loans: %w", err)
	}
	_, err := tx.Exec(ctx, `
		UPDATE loans SET loan_id = numbered.new_id
		FROM (SELECT loan_id, ROW_NUMBER() OVER (ORDER BY loan_id DESC) AS new_id
		      FROM loans) AS numbered
		WHERE loans.loan_id = numbered.loan_id`)
	if err != nil {
		return fmt.Errorf("renumber loans: %w", err)
	}
	return nil
}

// ListLoansByIDs returns the named loans in ascending id order. Missing
// ids are simply absent from the result.
func (s *Store) ListLoansByIDs(ctx context.Context, ids []int) ([]*Loan, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+loanColumns+`
		FROM loans l JOIN books b ON b.book_id = l.book_id
		WHERE l.loan_id = ANY($1)
		ORDER BY l.loan_id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*Loan{}
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.BookTitle, &l.BorrowerName, &l.ContactNumber,
			&l.Email, &l.Gender, &l.Classification, &l.BorrowedAt, &l.ReturnedAt); err != nil {
			return nil, err
		}
		loans = append(loans, &l)
	}
	return loans, rows.Err()
}

// GetLoan fetches a single loan with its book title.
func (s *Store) GetLoan(ctx context.Context, loanID int) (*Loan, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+loanColumns+`
		FROM loans l JOIN books b ON b.book_id = l.book_id
		WHERE l.loan_id = $1`, loanID)
	return scanLoan(row)
}

// loanConds translates the date and status filters into WHERE clauses.
// Today and this-month are calendar windows, not rolling ones; this-week
// is the last seven days.
func loanConds(date DateFilter, status StatusFilter) []string {
	var conds []string
	switch date {
	case FilterToday:
		conds = append(conds, `l.borrowed_at >= date_trunc('day', now())`)
	case FilterWeek:
		conds = append(conds, `l.borrowed_at >= now() - interval '7 days'`)
	case FilterMonth:
		conds = append(conds, `l.borrowed_at >= date_trunc('month', now())`)
	}
	switch status {
	case StatusReturned:
		conds = append(conds, `l.returned_at IS NOT NULL`)
	case StatusOutstanding:
		conds = append(conds, `l.returned_at IS NULL`)
	}
	return conds
}

// ListLoans returns loans ordered by id, optionally narrowed by a
// borrow-date window and a returned/outstanding status filter.
func (s *Store) ListLoans(ctx context.Context, date DateFilter, status StatusFilter) ([]*Loan, error) {
	query := `SELECT ` + loanColumns + `
		FROM loans l JOIN books b ON b.book_id = l.book_id`

	for i, c := range loanConds(date, status) {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY l.loan_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*Loan{}
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.BookTitle, &l.BorrowerName, &l.ContactNumber,
			&l.Email, &l.Gender, &l.Classification, &l.BorrowedAt, &l.ReturnedAt); err != nil {
			return nil, err
		}
		loans = append(loans, &l)
	}
	return loans, rows.Err()
}
