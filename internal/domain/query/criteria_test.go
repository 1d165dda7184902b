package query_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

func TestCompose_CriteriosAusentesNoRestringen(t *testing.T) {
	blank := "   "
	var nilAge *int
	rows := memberFixture()

	for name, cr := range map[string]query.Criteria{
		"nil":          nil,
		"vacío":        {},
		"valores nil":  {"username": nil, "teamName": nil, "ageGoe": nil, "ageLoe": nil},
		"en blanco":    {"username": "", "teamName": &blank, "ageGoe": "", "ageLoe": nilAge},
		"desconocidos": {"nickname": "x", "page": 3},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := memberComposer().Compose(cr)
			require.NoError(t, err)
			assert.True(t, p.IsIdentity())
			assert.Len(t, matching(rows, p), len(rows))
		})
	}
}

func TestCompose_UnSoloCriterioEquivaleAFiltroManual(t *testing.T) {
	rows := memberFixture()
	age := 30

	cases := []struct {
		name   string
		cr     query.Criteria
		manual func(query.Row) bool
	}{
		{"username", query.Criteria{"username": "member2"}, func(r query.Row) bool { return r.String("m.username") == "member2" }},
		{"teamName", query.Criteria{"teamName": "teamB"}, func(r query.Row) bool { return r.String("t.name") == "teamB" }},
		{"ageGoe", query.Criteria{"ageGoe": &age}, func(r query.Row) bool { return r.Int64("m.age") >= 30 }},
		{"ageLoe texto", query.Criteria{"ageLoe": "25"}, func(r query.Row) bool { return r.Int64("m.age") <= 25 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := memberComposer().Compose(tc.cr)
			require.NoError(t, err)
			require.Len(t, p.Conds(), 1)
			assert.Equal(t, filterRows(rows, tc.manual), matching(rows, p))
		})
	}
}

func TestCompose_Conjuncion(t *testing.T) {
	p, err := memberComposer().Compose(query.Criteria{"teamName": "teamB", "ageGoe": 35, "ageLoe": int64(40)})
	require.NoError(t, err)

	assert.Equal(t, []int64{4}, matching(memberFixture(), p))
	assert.True(t, p.Equivalent(query.And(query.Loe("m.age", int64(40)), query.Eq("t.name", "teamB"), query.Goe("m.age", int64(35)))))
}

func TestCompose_ValorNoConvertible(t *testing.T) {
	_, err := memberComposer().Compose(query.Criteria{"ageGoe": "veinte"})
	assert.ErrorIs(t, err, query.ErrInvalidCriteria)

	_, err = memberComposer().Compose(query.Criteria{"username": 10})
	assert.ErrorIs(t, err, query.ErrInvalidCriteria)
}

func TestCompose_NumeroConDecimalesSeRechaza(t *testing.T) {
	for name, v := range map[string]any{
		"float64": 20.5,
		"float32": float32(20.5),
		"decimal": decimal.RequireFromString("20.5"),
		"texto":   "20.5",
		"puntero": func() *float64 { f := 20.5; return &f }(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := memberComposer().Compose(query.Criteria{"ageGoe": v})
			assert.ErrorIs(t, err, query.ErrInvalidCriteria, "un valor fraccionario no se trunca")
		})
	}

	p, err := memberComposer().Compose(query.Criteria{"ageGoe": 20.0, "ageLoe": decimal.NewFromInt(25)})
	require.NoError(t, err)
	assert.True(t, p.Equivalent(query.And(query.Goe("m.age", int64(20)), query.Loe("m.age", int64(25)))))
	assert.Equal(t, []int64{2, 5}, matching(memberFixture(), p))
}
