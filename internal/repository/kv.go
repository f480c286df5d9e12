package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
)

type kvRecord struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := squirrel.
		Select("key", "value").
		From("kv_store").
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var rec kvRecord
	err = r.db.GetContext(ctx, &rec, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return rec.Value, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	query, args, err := squirrel.
		Insert("kv_store").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := squirrel.
		Delete("kv_store").
		Where(squirrel.Eq{"key": keys}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
