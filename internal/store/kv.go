package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KV is a string key-value table. It satisfies persist.KV.
type KV struct {
	db        *sql.DB
	namespace string
}

func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := sqlite().Select("value").
		From(sqlite().Table(tableKV)).
		Where(entsql.And(
			entsql.EQ("namespace", kv.namespace),
			entsql.EQ("key", key),
		)).
		Query()

	var value string
	err := kv.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

func (kv *KV) Set(ctx context.Context, key, value string) error {
	query, args := sqlite().Insert(tableKV).
		Columns("namespace", "key", "value", "updated_at").
		Values(kv.namespace, key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("namespace", "key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	query, args := sqlite().Delete(tableKV).
		Where(entsql.And(
			entsql.EQ("namespace", kv.namespace),
			entsql.EQ("key", key),
		)).
		Query()
	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Clear removes every key in the namespace.
func (kv *KV) Clear(ctx context.Context) error {
	query, args := sqlite().Delete(tableKV).
		Where(entsql.EQ("namespace", kv.namespace)).
		Query()
	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("kv clear: %w", err)
	}
	return nil
}
