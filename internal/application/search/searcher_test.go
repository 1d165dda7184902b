package search_test

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/application/search"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/seed"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type spyExecutor struct {
	next   ports.QueryExecutor
	execs  atomic.Int64
	counts atomic.Int64
}

func (s *spyExecutor) Execute(ctx context.Context, d query.Description) ([]query.Row, error) {
	s.execs.Add(1)
	return s.next.Execute(ctx, d)
}

func (s *spyExecutor) Count(ctx context.Context, d query.Description) (int64, error) {
	s.counts.Add(1)
	return s.next.Count(ctx, d)
}

type fixture struct {
	searcher *search.Searcher
	spy      *spyExecutor
	logs     *bytes.Buffer
}

func newFixture(t *testing.T, opts search.Options, withTx bool) fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exec := sqlite.NewExecutor(db, catalog.Schema())
	require.NoError(t, seed.Run(ctx, exec, sqlbuild.SQLite, seed.Shop(), seed.Options{}))

	var tx ports.ReadTxRunner
	if withTx {
		tx = sqlite.NewTxRunner(db, catalog.Schema())
	}
	logs := &bytes.Buffer{}
	spy := &spyExecutor{next: exec}
	s, err := search.New(query.NewPlanner(catalog.Schema(), 100), spy, tx, opts,
		logger.New(logger.Config{Env: "test", Level: "debug", Out: logs}))
	require.NoError(t, err)
	return fixture{searcher: s, spy: spy, logs: logs}
}

func members(sort ...query.Order) query.Request {
	return catalog.MemberTeamRequest(query.Predicate{}, sort)
}

// ──────────────────────────────────────────────────────────────────────────────
// SearchPage: conteo diferido
// ──────────────────────────────────────────────────────────────────────────────

func TestSearchPage_ConteoSoloCuandoEsNecesario(t *testing.T) {
	cases := []struct {
		name          string
		offset, limit int
		size          int
		counts        int64
	}{
		{"primera página incompleta", 0, 10, 6, 0},
		{"página llena", 0, 4, 4, 1},
		{"última página", 4, 4, 2, 0},
		{"más allá del final", 8, 4, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, search.Options{BatchSize: 100}, false)

			page, err := f.searcher.SearchPage(context.Background(), members(query.By(catalog.MemberID, query.Asc)),
				query.PageRequest{Offset: tc.offset, Limit: tc.limit}, query.StrategyBatched)
			require.NoError(t, err)

			assert.Len(t, page.Content, tc.size)
			require.NotNil(t, page.Total)
			assert.EqualValues(t, 6, *page.Total)
			assert.Equal(t, tc.counts, f.spy.counts.Load())
			assert.EqualValues(t, 1, f.spy.execs.Load())
		})
	}
}

func TestSearchPage_FiltroDinamicoYOrden(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 100}, false)
	filter, err := catalog.MemberFilters().Compose(query.Criteria{"ageGoe": 20, "ageLoe": 35})
	require.NoError(t, err)

	page, err := f.searcher.SearchPage(context.Background(),
		catalog.MemberTeamRequest(filter, nil),
		query.PageRequest{Offset: 0, Limit: 2, Sort: query.Sort{query.By(catalog.MemberAge, query.Desc)}},
		query.StrategyNaive)
	require.NoError(t, err)

	require.Len(t, page.Content, 2)
	assert.Equal(t, "userB", page.Content[0].Row.String(catalog.MemberUsername))
	assert.Equal(t, "member3", page.Content[1].Row.String(catalog.MemberUsername))
	assert.EqualValues(t, 4, *page.Total)
	assert.Equal(t, 2, page.TotalPages())
	assert.True(t, page.HasNext())
}

func TestSearchPage_PedidosConItemsEnLotes(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 100}, false)

	page, err := f.searcher.SearchPage(context.Background(), catalog.OrderRequest(query.Predicate{}, nil),
		query.PageRequest{Offset: 0, Limit: 2}, query.StrategyBatched)
	require.NoError(t, err)

	require.Len(t, page.Content, 2)
	assert.Len(t, page.Content[0].Children[catalog.AssocOrderItems], 2)
	assert.EqualValues(t, 4, *page.Total)
	assert.EqualValues(t, 2, f.spy.execs.Load(), "padres + un IN de ítems")
	assert.EqualValues(t, 1, f.spy.counts.Load())
	assert.Contains(t, f.logs.String(), `"count_elided":false`)
	assert.Contains(t, f.logs.String(), `"queries":3`)
}

func TestSearchPage_RechazosAntesDeConsultar(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 100}, false)
	ctx := context.Background()

	_, err := f.searcher.SearchPage(ctx, catalog.OrderRequest(query.Predicate{}, nil), query.PageRequest{Limit: 10}, query.StrategyEagerJoin)
	assert.ErrorIs(t, err, query.ErrUnsupportedStrategy)
	_, err = f.searcher.SearchPage(ctx, catalog.OrderRequest(query.Predicate{}, nil), query.PageRequest{Limit: 10}, query.StrategyFlat)
	assert.ErrorIs(t, err, query.ErrUnsupportedStrategy)
	_, err = f.searcher.SearchPage(ctx, members(), query.PageRequest{Limit: 500}, query.StrategyBatched)
	assert.ErrorIs(t, err, query.ErrInvalidPagination)
	_, err = f.searcher.SearchPage(ctx, members(), query.PageRequest{Offset: -1, Limit: 5}, query.StrategyBatched)
	assert.ErrorIs(t, err, query.ErrInvalidPagination)

	assert.Zero(t, f.spy.execs.Load())
	assert.Zero(t, f.spy.counts.Load())
}

func TestSearchPage_ConteoConsistente(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 100, ConsistentCount: true}, true)

	page, err := f.searcher.SearchPage(context.Background(), members(), query.PageRequest{Offset: 0, Limit: 3}, query.StrategyBatched)
	require.NoError(t, err)

	assert.Len(t, page.Content, 3)
	assert.EqualValues(t, 6, *page.Total)
	assert.Zero(t, f.spy.execs.Load(), "todo corre dentro de la transacción")
	assert.Zero(t, f.spy.counts.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Search, SearchSlice, FindOne
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_TodasLasEstrategias(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 1}, false)
	filter, err := catalog.OrderFilters().Compose(query.Criteria{"orderStatus": "ORDER"})
	require.NoError(t, err)

	var first []int64
	for _, st := range query.Strategies() {
		nodes, err := f.searcher.Search(context.Background(), catalog.OrderRequest(filter, nil), st)
		require.NoError(t, err, st.String())
		var ids []int64
		for _, n := range nodes {
			ids = append(ids, n.Row.Int64(catalog.OrderID))
		}
		if first == nil {
			first = ids
		}
		assert.Equal(t, first, ids, st.String())
	}
	assert.Equal(t, []int64{1, 2, 4}, first)
}

func TestSearchSlice(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 100}, false)
	ctx := context.Background()
	sort := query.Sort{query.By(catalog.MemberID, query.Asc)}

	s, err := f.searcher.SearchSlice(ctx, members(), query.PageRequest{Offset: 0, Limit: 4, Sort: sort}, query.StrategyBatched)
	require.NoError(t, err)
	assert.Len(t, s.Content, 4)
	assert.True(t, s.HasNext)

	s, err = f.searcher.SearchSlice(ctx, members(), query.PageRequest{Offset: 4, Limit: 4, Sort: sort}, query.StrategyBatched)
	require.NoError(t, err)
	assert.Len(t, s.Content, 2)
	assert.False(t, s.HasNext)

	assert.Zero(t, f.spy.counts.Load(), "un slice nunca cuenta")
}

func TestFindOne(t *testing.T) {
	f := newFixture(t, search.Options{BatchSize: 100}, false)
	ctx := context.Background()

	n, found, err := f.searcher.FindOne(ctx, catalog.MemberTeamRequest(query.Eq(catalog.MemberUsername, "member3"), nil))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "teamB", n.Row.String(catalog.TeamName))

	_, found, err = f.searcher.FindOne(ctx, catalog.MemberTeamRequest(query.Eq(catalog.MemberUsername, "nadie"), nil))
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = f.searcher.FindOne(ctx, catalog.MemberTeamRequest(query.Eq(catalog.TeamName, "teamA"), nil))
	assert.ErrorIs(t, err, query.ErrAmbiguousResult)
}

func TestNew_RechazaBatchSize(t *testing.T) {
	_, err := search.New(query.NewPlanner(catalog.Schema(), 100), nil, nil, search.Options{BatchSize: 0}, nil)
	assert.ErrorIs(t, err, query.ErrInvalidBatchSize)
}
