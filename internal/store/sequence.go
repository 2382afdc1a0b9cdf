package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequence numbers every appended row, results and LLM events alike, so
// the two kinds can be interleaved in time order.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

// Next reserves the next number. Numbers start at 1 and never repeat.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	row := s.db.QueryRowContext(ctx, `UPDATE sequence SET next = next + 1 WHERE id = 1 RETURNING next - 1`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("reserve sequence: %w", err)
	}
	return n, nil
}
