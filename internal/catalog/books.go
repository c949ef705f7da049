package catalog

import (
	"context"
	"fmt"
	"strings"
)

// AddBook inserts a manually entered book. Available copies start equal
// to total copies. Fails with ErrDuplicateID if the identifier is taken.
func (s *Store) AddBook(ctx context.Context, id string, f BookFields) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("book id: %w", ErrMissingField)
	}
	if err := ValidateBookFields(f); err != nil {
		return "", err
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO books (book_id, title, author, year_published, category, total_copies, available_copies, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (book_id) DO NOTHING`,
		id, f.Title, f.Author, f.YearPublished, f.Category,
		f.TotalCopies, f.TotalCopies, statusFor(f.TotalCopies))
	if err != nil {
		return "", fmt.Errorf("insert book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", ErrDuplicateID
	}

	s.events.Publish(Event{Kind: EventBookChanged, BookID: id})
	return id, nil
}

// InsertBookTx inserts a fully formed book record on the given
// transaction or pool. It is the ingestion insert path: no field
// validation, caller guarantees identifier uniqueness.
func (s *Store) InsertBookTx(ctx context.Context, db DBTX, b Book) error {
	_, err := db.Exec(ctx, `
		INSERT INTO books (book_id, title, author, year_published, category, total_copies, available_copies, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.Title, b.Author, b.YearPublished, b.Category,
		b.TotalCopies, b.AvailableCopies, b.Status)
	return err
}

// BookIDs returns every catalog identifier. The importer seeds its
// taken-identifier set from this.
func (s *Store) BookIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT book_id FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetBook fetches a single book by identifier.
func (s *Store) GetBook(ctx context.Context, id string) (*Book, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE book_id = $1`, id)
	return scanBook(row)
}

// likeEscaper quotes the ILIKE metacharacters so a search term matches
// literally. Backslash is Postgres's default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListBooks returns books ordered by identifier. A non-empty search term
// matches title, author, or identifier as a case-insensitive substring.
func (s *Store) ListBooks(ctx context.Context, search string) ([]*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var args []interface{}

	if strings.TrimSpace(search) != "" {
		query += ` WHERE title ILIKE $1 OR author ILIKE $1 OR book_id ILIKE $1`
		args = append(args, "%"+escapeLike(strings.TrimSpace(search))+"%")
	}
	query += ` ORDER BY book_id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.YearPublished, &b.Category,
			&b.TotalCopies, &b.AvailableCopies, &b.Status); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}

// UpdateBook edits a book's attributes. The identifier itself is
// immutable. Resizing total copies preserves the outstanding-loan count:
// available becomes new_total minus outstanding, and the resize fails
// with ErrBelowOutstandingLoans if new_total is smaller than outstanding.
func (s *Store) UpdateBook(ctx context.Context, id string, f BookFields) error {
	if err := ValidateBookFields(f); err != nil {
		return err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var total, available int
	err = tx.QueryRow(ctx,
		`SELECT total_copies, available_copies FROM books WHERE book_id = $1 FOR UPDATE`, id).
		Scan(&total, &available)
	if err != nil {
		return wrapNoRows(err)
	}

	newAvailable, status, err := resizeTransition(total, available, f.TotalCopies)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE books
		SET title = $2, author = $3, year_published = $4, category = $5,
		    total_copies = $6, available_copies = $7, status = $8
		WHERE book_id = $1`,
		id, f.Title, f.Author, f.YearPublished, f.Category,
		f.TotalCopies, newAvailable, status)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.events.Publish(Event{Kind: EventBookChanged, BookID: id})
	return nil
}

// DeleteBook removes a book and all loans referencing it, then
// renumbers the remaining loans to keep their ids dense.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Loans go via ON DELETE CASCADE.
	tag, err := tx.Exec(ctx, `DELETE FROM books WHERE book_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := renumberLoans(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.events.Publish(Event{Kind: EventBookChanged, BookID: id})
	s.events.Publish(Event{Kind: EventLoanChanged})
	return nil
}

// DeleteAllBooks clears the whole catalog and ledger.
func (s *Store) DeleteAllBooks(ctx context.Context) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM loans`); err != nil {
		return fmt.Errorf("delete loans: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("delete books: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.events.Publish(Event{Kind: EventBookChanged})
	s.events.Publish(Event{Kind: EventLoanChanged})
	return nil
}
