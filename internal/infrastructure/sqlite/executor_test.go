package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/seed"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlite"
)

func openShop(t *testing.T) (*sqlite.Executor, *sqlite.TxRunner) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exec := sqlite.NewExecutor(db, catalog.Schema())
	require.NoError(t, seed.Run(ctx, exec, sqlbuild.SQLite, seed.Shop(), seed.Options{}))
	return exec, sqlite.NewTxRunner(db, catalog.Schema())
}

func TestExecutor_FiltraYOrdena(t *testing.T) {
	exec, _ := openShop(t)
	filter := query.And(query.Eq(catalog.TeamName, "teamB"), query.Goe(catalog.MemberAge, 35), query.Loe(catalog.MemberAge, 40))

	rows, err := exec.Execute(context.Background(), query.Description{
		Entity: catalog.Member,
		Joins:  []query.Join{{Owner: catalog.Member, Association: catalog.AssocTeam}},
		Filter: filter,
		Sort:   query.Sort{query.By(catalog.MemberID, query.Asc)},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "member4", rows[0].String(catalog.MemberUsername))
	assert.Equal(t, 40, rows[0].Int(catalog.MemberAge))
	assert.Equal(t, "teamB", rows[0].String(catalog.TeamName))
}

func TestExecutor_LeftJoinConservaMiembrosSinEquipo(t *testing.T) {
	exec, _ := openShop(t)

	rows, err := exec.Execute(context.Background(), query.Description{
		Entity: catalog.Member,
		Joins:  []query.Join{{Owner: catalog.Member, Association: catalog.AssocTeam}},
		Sort:   query.Sort{query.By(catalog.MemberID, query.Asc)},
	})
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.True(t, rows[4].IsNull(catalog.TeamName))
	assert.Nil(t, rows[4].Int64Ptr(catalog.MemberTeamID))
}

func TestExecutor_PaginaYCuenta(t *testing.T) {
	exec, _ := openShop(t)
	d := query.Description{
		Entity: catalog.Member,
		Sort:   query.Sort{query.By(catalog.MemberAge, query.Desc), query.By(catalog.MemberID, query.Asc)},
		Offset: 1,
		Limit:  2,
	}

	rows, err := exec.Execute(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "userB", rows[0].String(catalog.MemberUsername))
	assert.Equal(t, "member3", rows[1].String(catalog.MemberUsername))

	n, err := exec.Count(context.Background(), d.CountQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)
}

func TestExecutor_DecimalesYFechas(t *testing.T) {
	exec, _ := openShop(t)

	rows, err := exec.Execute(context.Background(), query.Description{
		Entity: catalog.OrderItem,
		Joins:  []query.Join{{Owner: catalog.OrderItem, Association: catalog.AssocItem}},
		Filter: query.Eq(catalog.OrderItemOrderID, int64(2)),
		Sort:   query.Sort{query.By(catalog.OrderItemID, query.Asc)},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "40000", rows[1].Decimal(catalog.OrderItemPrice).String())
	assert.Equal(t, "Spring2 Book", rows[1].String(catalog.ItemName))

	orders, err := exec.Execute(context.Background(), query.Description{Entity: catalog.Order, Filter: query.Eq(catalog.OrderID, 1)})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2024, orders[0].Time(catalog.OrderDate).Year())
	assert.Equal(t, 10, orders[0].Time(catalog.OrderDate).Day())
}

func TestTxRunner_ReadOnly(t *testing.T) {
	_, tx := openShop(t)

	var total int64
	err := tx.ReadOnly(context.Background(), func(exec ports.QueryExecutor) error {
		n, err := exec.Count(context.Background(), query.Description{Entity: catalog.Order})
		total = n
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}
