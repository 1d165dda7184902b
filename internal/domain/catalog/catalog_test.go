package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

func TestSchema_CamposConocidos(t *testing.T) {
	s := catalog.Schema()
	for _, f := range []query.Field{
		catalog.TeamName, catalog.MemberUsername, catalog.MemberAge, catalog.ItemPrice,
		catalog.DeliveryCity, catalog.OrderDate, catalog.OrderItemQuantity,
	} {
		assert.NoError(t, s.ResolveField(f, nil), f)
	}
	for _, f := range catalog.MemberSortable {
		assert.NoError(t, s.ResolveField(f, nil), f)
	}
	for _, f := range catalog.OrderSortable {
		assert.NoError(t, s.ResolveField(f, nil), f)
	}
}

func TestMemberFilters_ComponeBusquedaDinamica(t *testing.T) {
	pred, err := catalog.MemberFilters().Compose(query.Criteria{
		"teamName": "teamB",
		"ageGoe":   35,
		"ageLoe":   40,
	})
	require.NoError(t, err)
	want := query.And(
		query.Eq(catalog.TeamName, "teamB"),
		query.Goe(catalog.MemberAge, int64(35)),
		query.Loe(catalog.MemberAge, int64(40)),
	)
	assert.True(t, pred.Equivalent(want), pred.String())
}

func TestOrderRequest_PlanificaConTodasLasEstrategias(t *testing.T) {
	pl := query.NewPlanner(catalog.Schema(), 100)
	filter, err := catalog.OrderFilters().Compose(query.Criteria{"memberName": "userA"})
	require.NoError(t, err)

	for _, st := range query.Strategies() {
		plan, err := pl.Plan(catalog.OrderRequest(filter, nil), nil, st)
		require.NoError(t, err, st.String())
		assert.Equal(t, []string{"o", "m", "d"}, plan.ParentAliases)
		require.Len(t, plan.Collections, 1)
		assert.Equal(t, []string{"oi", "i"}, plan.Collections[0].Aliases())
	}
}
