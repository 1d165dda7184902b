package loading

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// joinLoader resuelve eager y flat: un único query con las colecciones unidas, reagrupado en
// memoria. El plan ya garantiza que eager trae a lo sumo una colección y ninguno viene paginado.
type joinLoader struct {
	exec     ports.QueryExecutor
	strategy query.Strategy
}

func (l *joinLoader) Strategy() query.Strategy { return l.strategy }

func (l *joinLoader) Load(ctx context.Context, plan query.Plan) ([]Node, error) {
	if err := checkStrategy(plan, l.strategy); err != nil {
		return nil, err
	}
	rows, err := l.exec.Execute(ctx, plan.Main)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", plan.Root.Name, err)
	}
	return assemble(plan, rows), nil
}

type flatRow = query.FlatRow[any, query.Row, query.Row]

// assemble reagrupa filas planas: los padres en orden de primera aparición y, por cada colección,
// sus hijos sin los duplicados que produce el producto cartesiano entre colecciones.
func assemble(plan query.Plan, rows []query.Row) []Node {
	rootKey := plan.RootKey()
	parents := make([]flatRow, len(rows))
	for i, r := range rows {
		parents[i] = flatRow{ParentKey: r.Key(rootKey), Parent: r}
	}
	groups := query.Group(parents)
	nodes := make([]Node, len(groups))
	index := make(map[any]int, len(groups))
	for i, g := range groups {
		nodes[i] = newNode(plan, g.Parent)
		index[g.Key] = i
	}

	for _, c := range plan.Collections {
		childKey := c.KeyField()
		flat := make([]flatRow, len(rows))
		for i, r := range rows {
			flat[i] = flatRow{
				ParentKey: r.Key(rootKey),
				ChildKey:  r.Key(childKey),
				Child:     r,
				HasChild:  !r.IsNull(childKey),
			}
		}
		for _, g := range query.Group(flat) {
			children := make([]query.Row, len(g.Children))
			for j, child := range g.Children {
				children[j] = child.Project(c.Aliases()...)
			}
			nodes[index[g.Key]].Children[c.Name()] = children
		}
	}
	return nodes
}
