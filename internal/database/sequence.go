package database

import (
	"database/sql"
	"fmt"
)

// SequenceQueries owns the per-day order counters behind the human-readable
// order numbers.
type SequenceQueries struct {
	db *sql.DB
}

func NewSequenceQueries(db *sql.DB) *SequenceQueries {
	return &SequenceQueries{db: db}
}

// Next atomically increments and returns the counter for the given day key
// (YYYYMMDD). The first call of a new day returns 1.
func (q *SequenceQueries) Next(day string) (int, error) {
	query := `
		INSERT INTO order_sequences (day, counter)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET counter = order_sequences.counter + 1
		RETURNING counter
	`
	var counter int
	if err := q.db.QueryRow(query, day).Scan(&counter); err != nil {
		return 0, fmt.Errorf("failed to advance order sequence: %w", err)
	}
	return counter, nil
}
