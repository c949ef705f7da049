package catalog

import (
	"context"
	"fmt"
)

// Stats computes the dashboard aggregates: total copies held, issued
// (outstanding) loans, outstanding borrowers per classification with an
// Other bucket for free-text values, and outstanding-loan trends grouped
// by book category and by classification.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{
		ByClassification:      map[string]int{},
		LoansByCategory:       map[string]int{},
		LoansByClassification: map[string]int{},
	}

	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_copies), 0) FROM books`).Scan(&st.TotalCopies)
	if err != nil {
		return nil, fmt.Errorf("total copies: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE returned_at IS NULL`).Scan(&st.OutstandingLoans)
	if err != nil {
		return nil, fmt.Errorf("outstanding loans: %w", err)
	}

	if err := s.countInto(ctx, st.ByClassification, `
		SELECT CASE WHEN classification IN ('Student', 'Faculty', 'REPS')
		            THEN classification ELSE 'Other' END AS bucket, COUNT(*)
		FROM loans WHERE returned_at IS NULL
		GROUP BY bucket`); err != nil {
		return nil, fmt.Errorf("outstanding by classification: %w", err)
	}

	if err := s.countInto(ctx, st.LoansByCategory, `
		SELECT b.category, COUNT(*) FROM loans l
		JOIN books b ON b.book_id = l.book_id
		WHERE l.returned_at IS NULL
		GROUP BY b.category`); err != nil {
		return nil, fmt.Errorf("trends by category: %w", err)
	}

	if err := s.countInto(ctx, st.LoansByClassification, `
		SELECT classification, COUNT(*) FROM loans
		WHERE returned_at IS NULL
		GROUP BY classification`); err != nil {
		return nil, fmt.Errorf("trends by classification: %w", err)
	}

	return st, nil
}

// countInto runs a (label, count) query into the given map.
func (s *Store) countInto(ctx context.Context, dst map[string]int, query string) error {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return err
		}
		dst[label] = n
	}
	return rows.Err()
}
