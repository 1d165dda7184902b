package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
)

var _ ports.QueryExecutor = (*Executor)(nil)

// Executor implementa ports.QueryExecutor con pgx. Pasar pool o tx (Querier).
type Executor struct {
	q       Querier
	builder *sqlbuild.Builder
}

// NewExecutor construye el ejecutor con el esquema de la aplicación.
func NewExecutor(q Querier, schema *query.Schema) *Executor {
	return &Executor{q: q, builder: sqlbuild.New(schema, sqlbuild.Postgres)}
}

// Execute corre el SELECT; NUMERIC llega como decimal.Decimal gracias al codec registrado en el pool.
func (e *Executor) Execute(ctx context.Context, d query.Description) ([]query.Row, error) {
	q, err := e.builder.Select(d)
	if err != nil {
		return nil, err
	}
	rows, err := e.q.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, classify("query "+d.Entity, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify("collect "+d.Entity, err)
	}
	out := make([]query.Row, len(maps))
	for i, m := range maps {
		out[i] = query.Row(m)
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
	if err := e.q.QueryRow(ctx, q.SQL, q.Args...).Scan(&n); err != nil {
		return 0, classify("count "+d.Entity, err)
	}
	return n, nil
}

// Exec ejecuta una sentencia sin resultado (DDL, seeds).
func (e *Executor) Exec(ctx context.Context, stmt string, args ...any) error {
	if _, err := e.q.Exec(ctx, stmt, args...); err != nil {
		return classify("exec", err)
	}
	return nil
}
