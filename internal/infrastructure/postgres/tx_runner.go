package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

var _ ports.ReadTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	schema *query.Schema
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, schema *query.Schema) *TxRunner {
	return &TxRunner{pool: pool, schema: schema}
}

// ReadOnly inicia una transacción REPEATABLE READ de solo lectura, ejecuta fn con un ejecutor
// atado a la tx y hace Commit o Rollback. Todas las lecturas de fn ven la misma instantánea.
func (r *TxRunner) ReadOnly(ctx context.Context, fn func(exec ports.QueryExecutor) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewExecutor(tx, r.schema)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
