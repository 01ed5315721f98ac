package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the query surface shared by *pgxpool.Pool, pgx.Tx and pgxmock.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB routes every call to the transaction carried by ctx, if any.
type DB struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

func (d *DB) conn(ctx context.Context) Database {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return d.pool
}

func (d *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := d.conn(ctx).Exec(ctx, sql, args...)
	return tag, Translate(err)
}

func (d *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := d.conn(ctx).Query(ctx, sql, args...)
	return rows, Translate(err)
}

func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return translatedRow{row: d.conn(ctx).QueryRow(ctx, sql, args...)}
}

type translatedRow struct {
	row pgx.Row
}

func (r translatedRow) Scan(dest ...any) error {
	return Translate(r.row.Scan(dest...))
}
