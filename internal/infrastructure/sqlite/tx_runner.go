package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

var _ ports.ReadTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db     *sql.DB
	schema *query.Schema
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB, schema *query.Schema) *TxRunner {
	return &TxRunner{db: db, schema: schema}
}

// ReadOnly abre una transacción, ejecuta fn con un ejecutor atado a ella y siempre hace Rollback:
// no hay nada que confirmar. SQLite aísla la transacción de escrituras concurrentes.
func (r *TxRunner) ReadOnly(ctx context.Context, fn func(exec ports.QueryExecutor) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return fn(NewExecutor(tx, r.schema))
}
