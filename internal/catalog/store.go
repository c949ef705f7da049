package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides catalog and ledger operations over a pgx pool.
type Store struct {
	pool   *pgxpool.Pool
	events *Broker
}

// NewStore creates a Store. The broker may be shared with other
// components that want to observe mutations.
func NewStore(pool *pgxpool.Pool, events *Broker) *Store {
	if events == nil {
		events = NewBroker()
	}
	return &Store{pool: pool, events: events}
}

// Pool exposes the underlying connection pool for components that manage
// their own transactions, such as the workbook importer.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Events returns the store's event broker.
func (s *Store) Events() *Broker { return s.events }

// begin starts a transaction with a rollback-on-error helper.
func (s *Store) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

// wrapNoRows converts pgx's no-rows sentinel into ErrNotFound.
func wrapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const bookColumns = `book_id, title, author, year_published, category, total_copies, available_copies, status`

// scanBook reads one book row in bookColumns order.
func scanBook(row pgx.Row) (*Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.YearPublished, &b.Category,
		&b.TotalCopies, &b.AvailableCopies, &b.Status)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
