package loading_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/seed"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlite"
)

// countingExecutor registra cada descripción ejecutada antes de delegar.
type countingExecutor struct {
	next ports.QueryExecutor
	mu   sync.Mutex
	seen []query.Description
}

func (c *countingExecutor) Execute(ctx context.Context, d query.Description) ([]query.Row, error) {
	c.mu.Lock()
	c.seen = append(c.seen, d)
	c.mu.Unlock()
	return c.next.Execute(ctx, d)
}

func (c *countingExecutor) Count(ctx context.Context, d query.Description) (int64, error) {
	c.mu.Lock()
	c.seen = append(c.seen, d)
	c.mu.Unlock()
	return c.next.Count(ctx, d)
}

func (c *countingExecutor) queries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// fakeExecutor responde desde filas en memoria ya unidas, aplicando solo el filtro.
type fakeExecutor struct {
	rows map[string][]query.Row
	err  error
}

func (f *fakeExecutor) Execute(_ context.Context, d query.Description) ([]query.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []query.Row
	for _, r := range f.rows[d.Entity] {
		if d.Filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeExecutor) Count(ctx context.Context, d query.Description) (int64, error) {
	rows, err := f.Execute(ctx, d)
	return int64(len(rows)), err
}

func openShop(t *testing.T) ports.QueryExecutor {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exec := sqlite.NewExecutor(db, catalog.Schema())
	require.NoError(t, seed.Run(ctx, exec, sqlbuild.SQLite, seed.Shop(), seed.Options{}))
	return exec
}

func orderPlan(t *testing.T, st query.Strategy, page *query.PageRequest) query.Plan {
	t.Helper()
	plan, err := query.NewPlanner(catalog.Schema(), 100).Plan(catalog.OrderRequest(query.Predicate{}, nil), page, st)
	require.NoError(t, err)
	return plan
}
