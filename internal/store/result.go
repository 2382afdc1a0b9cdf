package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type resultRepo struct {
	db  *sql.DB
	seq *sequence
}

var resultColumns = []string{"id", "sequence", "session_id", "timestamp", "summary"}

func (r *resultRepo) Save(ctx context.Context, res Result) error {
	if res.SessionID == "" {
		return errors.New("save result: empty session ID")
	}

	data, err := json.Marshal(res.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := res.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	s := res.Summary
	query, args := sqlite().Insert(tableResults).
		Columns("sequence", "session_id", "timestamp", "mode", "difficulty",
			"correct_count", "total", "score", "summary").
		Values(seqNum, res.SessionID, ts.UnixMilli(), s.Mode, s.Difficulty,
			s.CorrectCount, s.Total, s.Score, string(data)).
		OnConflict(entsql.ConflictColumns("session_id"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]Result, error) {
	sel := sqlite().Select(resultColumns...).
		From(sqlite().Table(tableResults)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resultRepo) Get(ctx context.Context, id int) (*Result, error) {
	query, args := sqlite().Select(resultColumns...).
		From(sqlite().Table(tableResults)).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := scanResult(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resultRepo) StatsByMode(ctx context.Context) ([]ModeStats, error) {
	query, args := sqlite().Select(
		"mode",
		entsql.Count("*"),
		entsql.Avg("score"),
		entsql.Max("score"),
		entsql.Sum("correct_count"),
		entsql.Sum("total"),
	).
		From(sqlite().Table(tableResults)).
		GroupBy("mode").
		OrderBy("mode").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query result stats: %w", err)
	}
	defer rows.Close()

	var out []ModeStats
	for rows.Next() {
		var m ModeStats
		if err := rows.Scan(&m.Mode, &m.Rounds, &m.AvgScore, &m.BestScore, &m.CorrectCount, &m.Total); err != nil {
			return nil, fmt.Errorf("scan result stats: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanResult(row rowScanner) (Result, error) {
	var res Result
	var ts int64
	var data string
	err := row.Scan(&res.ID, &res.Sequence, &res.SessionID, &ts, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return res, err
	}
	if err != nil {
		return res, fmt.Errorf("scan result: %w", err)
	}
	res.Timestamp = time.UnixMilli(ts)
	if err := json.Unmarshal([]byte(data), &res.Summary); err != nil {
		return res, fmt.Errorf("unmarshal summary %d: %w", res.ID, err)
	}
	return res, nil
}
