package loading

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// batchedLoader padres paginados y un query IN por colección y lote de claves.
type batchedLoader struct {
	exec      ports.QueryExecutor
	batchSize int
}

func (l *batchedLoader) Strategy() query.Strategy { return query.StrategyBatched }

func (l *batchedLoader) Load(ctx context.Context, plan query.Plan) ([]Node, error) {
	if err := checkStrategy(plan, query.StrategyBatched); err != nil {
		return nil, err
	}
	nodes, err := rootNodes(ctx, l.exec, plan)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nodes, nil
	}
	for _, c := range plan.Collections {
		keys := make([]any, 0, len(nodes))
		for _, n := range nodes {
			keys = append(keys, n.Row.Key(plan.OwnerField(c)))
		}
		byParent, err := LoadChildren(ctx, l.exec, plan, c, keys, l.batchSize)
		if err != nil {
			return nil, err
		}
		for i := range nodes {
			if children, ok := byParent[nodes[i].Row.Key(plan.OwnerField(c))]; ok {
				nodes[i].Children[c.Name()] = children
			}
		}
	}
	return nodes, nil
}

// LoadChildren carga los hijos de la colección para las claves de padre dadas, en lotes de a lo
// sumo batchSize claves por query IN. Las claves repetidas se consultan una vez y las nulas se
// ignoran. El mapa resultante tiene una entrada por cada clave pedida, vacía si no tiene hijos;
// los hijos de cada padre quedan ordenados por su clave.
func LoadChildren(ctx context.Context, exec ports.QueryExecutor, plan query.Plan, c query.Collection, keys []any, batchSize int) (map[any][]query.Row, error) {
	if err := ValidateBatchSize(batchSize); err != nil {
		return nil, err
	}
	out := make(map[any][]query.Row, len(keys))
	unique := make([]any, 0, len(keys))
	for _, k := range keys {
		k = query.NormalizeKey(k)
		if k == nil {
			continue
		}
		if _, seen := out[k]; seen {
			continue
		}
		out[k] = []query.Row{}
		unique = append(unique, k)
	}

	for start := 0; start < len(unique); start += batchSize {
		end := min(start+batchSize, len(unique))
		rows, err := exec.Execute(ctx, plan.ChildQuery(c, unique[start:end]...))
		if err != nil {
			return nil, fmt.Errorf("load %s batch %d-%d: %w", c.Name(), start, end, err)
		}
		for _, r := range rows {
			parent := r.Key(c.ParentField())
			if _, ok := out[parent]; !ok {
				continue
			}
			out[parent] = append(out[parent], r.Project(c.Aliases()...))
		}
	}
	return out, nil
}
