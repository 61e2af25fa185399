package database

import (
	"context"
	"strings"
	"time"

	"orders-api/internal/common/logger"

	"github.com/jmoiron/sqlx"
)

// DatabaseError wraps any backend failure: connectivity, constraint violation, syntax.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string { return "database " + e.Op + ": " + e.Err.Error() }

func (e *DatabaseError) Unwrap() error { return e.Err }

// Gateway runs one parameterized statement per call on a pooled connection.
type Gateway struct {
	db           *sqlx.DB
	queryTimeout time.Duration
	lg           *logger.Logger
}

func NewGateway(db *sqlx.DB, queryTimeout time.Duration, lg *logger.Logger) *Gateway {
	return &Gateway{db: db, queryTimeout: queryTimeout, lg: lg}
}

// DB exposes the pool for stats collection.
func (g *Gateway) DB() *sqlx.DB { return g.db }

// withConn holds one pool slot for the duration of fn. The slot is returned
// to the pool on every path, including when fn fails.
func (g *Gateway) withConn(ctx context.Context, op string, fn func(context.Context, *sqlx.Conn) error) error {
	if g.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.queryTimeout)
		defer cancel()
	}

	conn, err := g.db.Connx(ctx)
	if err != nil {
		return &DatabaseError{Op: "acquire", Err: err}
	}
	defer conn.Close()

	start := time.Now()
	err = fn(ctx, conn)
	g.lg.Debug("db_statement", map[string]any{"op": op, "duration_ms": time.Since(start).Milliseconds()})
	if err != nil {
		return &DatabaseError{Op: op, Err: err}
	}
	return nil
}

// Query returns every row produced by query. Zero rows yield an empty, non-nil slice.
func (g *Gateway) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	out := make([]map[string]any, 0)
	err := g.withConn(ctx, "query", func(ctx context.Context, conn *sqlx.Conn) error {
		rows, err := conn.QueryxContext(ctx, g.db.Rebind(query), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			row := make(map[string]any)
			if err := rows.MapScan(row); err != nil {
				return err
			}
			out = append(out, normalizeRow(row))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exec runs a statement that returns no rows and reports how many rows it touched.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := g.withConn(ctx, "exec", func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, g.db.Rebind(query), args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return &DatabaseError{Op: "ping", Err: err}
	}
	return nil
}

func (g *Gateway) Close() error { return g.db.Close() }

// normalizeRow upper-cases column names so Postgres (which folds unquoted
// identifiers to lower case) and MySQL serialize rows the same way.
func normalizeRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[strings.ToUpper(k)] = v
	}
	return out
}
