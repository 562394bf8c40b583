// Package bootstrap holds the one-shot setup operations: storage bucket,
// schema, fixture rows and the WAITLIST status migration. They run with
// service credentials, outside request serving.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgx used here; *pgxpool.Pool and *pgx.Conn satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func Connect(ctx context.Context, uri string) (*pgxpool.Pool, error) {
	if uri == "" {
		return nil, fmt.Errorf("POSTGRES_SERVICE_URI (or POSTGRES_URI) is empty")
	}
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// sqlList renders values as a quoted SQL IN list.
func sqlList[T ~string](values []T) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+strings.ReplaceAll(string(v), "'", "''")+"'")
	}
	return strings.Join(quoted, ", ")
}
