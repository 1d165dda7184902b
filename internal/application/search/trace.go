package search

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

// countingExecutor cuenta los round trips de una búsqueda.
type countingExecutor struct {
	next    ports.QueryExecutor
	queries atomic.Int64
}

func (c *countingExecutor) Execute(ctx context.Context, d query.Description) ([]query.Row, error) {
	c.queries.Add(1)
	return c.next.Execute(ctx, d)
}

func (c *countingExecutor) Count(ctx context.Context, d query.Description) (int64, error) {
	c.queries.Add(1)
	return c.next.Count(ctx, d)
}

func (s *Searcher) trace(ctx context.Context, op string, plan query.Plan, exec *countingExecutor, parents int) *zerolog.Event {
	return logger.FromContext(ctx, s.log).Debug().
		Str("op", op).
		Str("entity", plan.Root.Name).
		Str("strategy", plan.Strategy.String()).
		Str("filter", plan.Main.Filter.String()).
		Int64("queries", exec.queries.Load()).
		Int("parents", parents)
}
