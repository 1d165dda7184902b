package ports

import (
	"context"

	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// QueryExecutor puerto de salida hacia la persistencia. Recibe descripciones de query, nunca SQL,
// de modo que el núcleo no conoce el dialecto. Los adaptadores (postgres, sqlite) lo implementan.
type QueryExecutor interface {
	// Execute devuelve las filas indexadas por "alias.columna", en el orden pedido.
	Execute(ctx context.Context, d query.Description) ([]query.Row, error)
	// Count ejecuta la proyección de conteo de la descripción.
	Count(ctx context.Context, d query.Description) (int64, error)
}

// ReadTxRunner ejecuta fn dentro de una transacción de solo lectura con un ejecutor atado a ella.
// Se usa para que contenido y conteo de una página vean el mismo estado.
type ReadTxRunner interface {
	ReadOnly(ctx context.Context, fn func(exec QueryExecutor) error) error
}
