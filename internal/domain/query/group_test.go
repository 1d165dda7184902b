package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

type item struct {
	ID   int
	Name string
}

func flat(parent int, child int) query.FlatRow[int, string, item] {
	if child == 0 {
		return query.FlatRow[int, string, item]{ParentKey: parent, Parent: "order"}
	}
	return query.FlatRow[int, string, item]{
		ParentKey: parent,
		Parent:    "order",
		ChildKey:  child,
		Child:     item{ID: child},
		HasChild:  true,
	}
}

func TestGroup_CuatroPadresCincoFilas(t *testing.T) {
	// o1 con 2 ítems, o2 con 1, o3 sin ítems, o4 con 1.
	rows := []query.FlatRow[int, string, item]{
		flat(1, 10), flat(1, 11), flat(2, 20), flat(3, 0), flat(4, 40),
	}

	groups := query.Group(rows)

	require.Len(t, groups, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{groups[0].Key, groups[1].Key, groups[2].Key, groups[3].Key})
	assert.Len(t, groups[0].Children, 2)
	assert.Len(t, groups[1].Children, 1)
	assert.NotNil(t, groups[2].Children)
	assert.Empty(t, groups[2].Children)
	assert.Equal(t, []item{{ID: 40}}, groups[3].Children)
}

func TestGroup_PadreConDosHijosYTresVacios(t *testing.T) {
	// join plano: A con 2 hijos, B a D sin hijos (una fila con hijo nulo cada uno).
	type child struct{ ID string }
	rows := []query.FlatRow[string, string, child]{
		{ParentKey: "A", Parent: "A", ChildKey: "a1", Child: child{ID: "a1"}, HasChild: true},
		{ParentKey: "A", Parent: "A", ChildKey: "a2", Child: child{ID: "a2"}, HasChild: true},
		{ParentKey: "B", Parent: "B"},
		{ParentKey: "C", Parent: "C"},
		{ParentKey: "D", Parent: "D"},
	}

	groups := query.Group(rows)

	require.Len(t, groups, 4)
	for i, key := range []string{"A", "B", "C", "D"} {
		assert.Equal(t, key, groups[i].Key, "orden original de los padres")
	}
	assert.Equal(t, []child{{ID: "a1"}, {ID: "a2"}}, groups[0].Children)
	for _, g := range groups[1:] {
		assert.NotNil(t, g.Children)
		assert.Len(t, g.Children, 0, g.Key)
	}
}

func TestGroup_DescartaHijosRepetidos(t *testing.T) {
	// producto cartesiano de dos colecciones: el mismo hijo aparece varias veces.
	rows := []query.FlatRow[int, string, item]{
		flat(1, 10), flat(1, 10), flat(1, 11), flat(1, 10), flat(2, 10),
	}

	groups := query.Group(rows)

	require.Len(t, groups, 2)
	assert.Equal(t, []item{{ID: 10}, {ID: 11}}, groups[0].Children)
	assert.Equal(t, []item{{ID: 10}}, groups[1].Children, "la deduplicación es por padre")
}

func TestGroup_PadreConservaPrimeraFila(t *testing.T) {
	rows := []query.FlatRow[int, string, item]{
		{ParentKey: 1, Parent: "primera", ChildKey: 1, Child: item{ID: 1}, HasChild: true},
		{ParentKey: 1, Parent: "segunda", ChildKey: 2, Child: item{ID: 2}, HasChild: true},
	}
	groups := query.Group(rows)
	require.Len(t, groups, 1)
	assert.Equal(t, "primera", groups[0].Parent)
}

func TestGroup_FlattenEsInversa(t *testing.T) {
	rows := []query.FlatRow[int, string, item]{
		flat(3, 30), flat(1, 10), flat(1, 11), flat(2, 0),
	}
	childKey := func(c item) int { return c.ID }

	once := query.Group(rows)
	twice := query.Group(query.Flatten(once, childKey))

	assert.Equal(t, once, twice)
	assert.Equal(t, rows, query.Flatten(once, childKey))
}

func TestGroup_Vacio(t *testing.T) {
	assert.Empty(t, query.Group[int, string, item](nil))
}
