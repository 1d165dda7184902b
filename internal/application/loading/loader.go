// Package loading implementa las estrategias de carga de colecciones a-muchos. Todas reciben un
// query.Plan ya validado y devuelven el mismo []Node para la misma petición.
package loading

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// MaxBatchSize tope de claves por query IN.
const MaxBatchSize = 1000

// Node padre cargado: clave, columnas del padre (raíz + uniones a-uno) e hijos por asociación.
// Children contiene una entrada por cada colección pedida, vacía si no hay hijos.
type Node struct {
	Key      any
	Row      query.Row
	Children map[string][]query.Row
}

// Loader carga los padres de un plan y adjunta sus colecciones.
type Loader interface {
	Strategy() query.Strategy
	Load(ctx context.Context, plan query.Plan) ([]Node, error)
}

// New construye el loader de la estrategia. batchSize solo aplica a batched y debe estar en 1..MaxBatchSize.
func New(strategy query.Strategy, exec ports.QueryExecutor, batchSize int) (Loader, error) {
	switch strategy {
	case query.StrategyNaive:
		return &naiveLoader{exec: exec}, nil
	case query.StrategyEagerJoin:
		return &joinLoader{exec: exec, strategy: query.StrategyEagerJoin}, nil
	case query.StrategyFlat:
		return &joinLoader{exec: exec, strategy: query.StrategyFlat}, nil
	case query.StrategyBatched:
		if err := ValidateBatchSize(batchSize); err != nil {
			return nil, err
		}
		return &batchedLoader{exec: exec, batchSize: batchSize}, nil
	default:
		return nil, fmt.Errorf("%w: %s", query.ErrUnsupportedStrategy, strategy)
	}
}

// ValidateBatchSize exige 1 <= n <= MaxBatchSize.
func ValidateBatchSize(n int) error {
	if n < 1 || n > MaxBatchSize {
		return fmt.Errorf("%w: %d fuera de 1..%d", query.ErrInvalidBatchSize, n, MaxBatchSize)
	}
	return nil
}

func checkStrategy(plan query.Plan, want query.Strategy) error {
	if plan.Strategy != want {
		return fmt.Errorf("%w: plan %s ejecutado con loader %s", query.ErrUnsupportedStrategy, plan.Strategy, want)
	}
	return nil
}

func newNode(plan query.Plan, row query.Row) Node {
	n := Node{
		Key:      row.Key(plan.RootKey()),
		Row:      row.Project(plan.ParentAliases...),
		Children: make(map[string][]query.Row, len(plan.Collections)),
	}
	for _, c := range plan.Collections {
		n.Children[c.Name()] = []query.Row{}
	}
	return n
}

// rootNodes ejecuta el query principal (sin colecciones unidas) y arma los nodos vacíos.
func rootNodes(ctx context.Context, exec ports.QueryExecutor, plan query.Plan) ([]Node, error) {
	rows, err := exec.Execute(ctx, plan.Main)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", plan.Root.Name, err)
	}
	nodes := make([]Node, len(rows))
	for i, r := range rows {
		nodes[i] = newNode(plan, r)
	}
	return nodes, nil
}
