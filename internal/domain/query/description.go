package query

// JoinKind tipo de unión.
type JoinKind int

const (
	LeftJoin JoinKind = iota
	InnerJoin
)

// Join une la asociación Owner.Association al query.
type Join struct {
	Owner       string
	Association string
	Kind        JoinKind
}

// Projection qué devuelve el query: filas o un conteo.
type Projection int

const (
	ProjectRows Projection = iota
	ProjectCount
)

// Description describe un query ejecutable sin acoplarse a SQL. Limit 0 significa sin límite.
type Description struct {
	Entity     string
	Joins      []Join
	Filter     Predicate
	Sort       Sort
	Offset     int
	Limit      int
	Projection Projection
}

// CountQuery refleja entidad, uniones y filtro, proyecta un conteo y descarta orden, offset y límite.
func (d Description) CountQuery() Description {
	joins := make([]Join, len(d.Joins))
	copy(joins, d.Joins)
	return Description{
		Entity:     d.Entity,
		Joins:      joins,
		Filter:     d.Filter,
		Projection: ProjectCount,
	}
}

// Paginated indica si el query aplica offset o límite.
func (d Description) Paginated() bool {
	return d.Offset > 0 || d.Limit > 0
}
