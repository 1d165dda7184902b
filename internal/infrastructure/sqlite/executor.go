package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
)

var _ ports.QueryExecutor = (*Executor)(nil)

// Querier lo que comparten *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor implementa ports.QueryExecutor sobre database/sql.
type Executor struct {
	db      Querier
	builder *sqlbuild.Builder
}

// NewExecutor construye el ejecutor con el esquema de la aplicación.
func NewExecutor(db Querier, schema *query.Schema) *Executor {
	return &Executor{db: db, builder: sqlbuild.New(schema, sqlbuild.SQLite)}
}

// Execute corre el SELECT y devuelve las filas indexadas por el alias de columna.
func (e *Executor) Execute(ctx context.Context, d query.Description) ([]query.Row, error) {
	q, err := e.builder.Select(d)
	if err != nil {
		return nil, err
	}
	rows, err := e.db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", d.Entity, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", d.Entity, err)
	}
	var out []query.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", d.Entity, err)
		}
		row := make(query.Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", d.Entity, err)
	}
	return out, nil
}

// Count corre la proyección de conteo.
func (e *Executor) Count(ctx context.Context, d query.Description) (int64, error) {
	q, err := e.builder.Count(d)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := e.db.QueryRowContext(ctx, q.SQL, q.Args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", d.Entity, err)
	}
	return n, nil
}

// Exec ejecuta una sentencia sin resultado (DDL, seeds).
func (e *Executor) Exec(ctx context.Context, stmt string, args ...any) error {
	if _, err := e.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}
