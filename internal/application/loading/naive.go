package loading

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// naiveLoader un query por padre y colección (1 + N·A). Sirve de línea base.
type naiveLoader struct {
	exec ports.QueryExecutor
}

func (l *naiveLoader) Strategy() query.Strategy { return query.StrategyNaive }

func (l *naiveLoader) Load(ctx context.Context, plan query.Plan) ([]Node, error) {
	if err := checkStrategy(plan, query.StrategyNaive); err != nil {
		return nil, err
	}
	nodes, err := rootNodes(ctx, l.exec, plan)
	if err != nil {
		return nil, err
	}
	for i := range nodes {
		for _, c := range plan.Collections {
			owner := nodes[i].Row.Key(plan.OwnerField(c))
			if owner == nil {
				continue
			}
			rows, err := l.exec.Execute(ctx, plan.ChildQuery(c, owner))
			if err != nil {
				return nil, fmt.Errorf("load %s of %v: %w", c.Name(), owner, err)
			}
			children := make([]query.Row, len(rows))
			for j, r := range rows {
				children[j] = r.Project(c.Aliases()...)
			}
			nodes[i].Children[c.Name()] = children
		}
	}
	return nodes, nil
}
