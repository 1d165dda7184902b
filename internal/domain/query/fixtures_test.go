package query_test

import "github.com/jhoicas/shop-query-api/internal/domain/query"

// testSchema esquema mínimo con una entidad de dos colecciones (post) para los casos de rechazo.
func testSchema() *query.Schema {
	return query.MustSchema(
		[]query.Entity{
			{Name: "team", Table: "team", Alias: "t", Key: "id", Columns: []string{"id", "name"}},
			{Name: "member", Table: "member", Alias: "m", Key: "id", Columns: []string{"id", "username", "age", "team_id"}},
			{Name: "order", Table: "orders", Alias: "o", Key: "id", Columns: []string{"id", "member_id", "status"}},
			{Name: "orderItem", Table: "order_item", Alias: "oi", Key: "id", Columns: []string{"id", "order_id", "item_id", "quantity"}},
			{Name: "item", Table: "item", Alias: "i", Key: "id", Columns: []string{"id", "name"}},
			{Name: "post", Table: "post", Alias: "p", Key: "id", Columns: []string{"id", "title"}},
			{Name: "comment", Table: "comment", Alias: "c", Key: "id", Columns: []string{"id", "post_id", "body"}},
			{Name: "tag", Table: "tag", Alias: "g", Key: "id", Columns: []string{"id", "post_id", "label"}},
		},
		[]query.Association{
			{Owner: "member", Name: "team", Target: "team", Cardinality: query.ToOne, OwnerColumn: "team_id", TargetColumn: "id"},
			{Owner: "team", Name: "members", Target: "member", Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "team_id"},
			{Owner: "order", Name: "member", Target: "member", Cardinality: query.ToOne, OwnerColumn: "member_id", TargetColumn: "id"},
			{Owner: "order", Name: "orderItems", Target: "orderItem", Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "order_id", With: []string{"item"}},
			{Owner: "orderItem", Name: "item", Target: "item", Cardinality: query.ToOne, OwnerColumn: "item_id", TargetColumn: "id"},
			{Owner: "post", Name: "comments", Target: "comment", Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "post_id"},
			{Owner: "post", Name: "tags", Target: "tag", Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "post_id"},
		},
	)
}

// memberFixture filas member LEFT JOIN team como las devolvería el ejecutor.
func memberFixture() []query.Row {
	return []query.Row{
		{"m.id": int64(1), "m.username": "member1", "m.age": int64(10), "m.team_id": int64(1), "t.id": int64(1), "t.name": "teamA"},
		{"m.id": int64(2), "m.username": "member2", "m.age": int64(20), "m.team_id": int64(1), "t.id": int64(1), "t.name": "teamA"},
		{"m.id": int64(3), "m.username": "member3", "m.age": int64(30), "m.team_id": int64(2), "t.id": int64(2), "t.name": "teamB"},
		{"m.id": int64(4), "m.username": "member4", "m.age": int64(40), "m.team_id": int64(2), "t.id": int64(2), "t.name": "teamB"},
		{"m.id": int64(5), "m.username": "userA", "m.age": int64(25), "m.team_id": nil, "t.id": nil, "t.name": nil},
	}
}

func memberComposer() query.Composer {
	return query.NewComposer(
		query.Text("username", "m.username"),
		query.Text("teamName", "t.name"),
		query.AtLeast("ageGoe", "m.age"),
		query.AtMost("ageLoe", "m.age"),
	)
}

func filterRows(rows []query.Row, keep func(query.Row) bool) []int64 {
	var ids []int64
	for _, r := range rows {
		if keep(r) {
			ids = append(ids, r.Int64("m.id"))
		}
	}
	return ids
}

func matching(rows []query.Row, p query.Predicate) []int64 {
	return filterRows(rows, func(r query.Row) bool { return p.Matches(r) })
}
