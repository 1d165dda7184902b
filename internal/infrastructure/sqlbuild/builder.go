// Package sqlbuild traduce descripciones de query a SQL con squirrel. Es el único lugar que
// conoce nombres de tabla, alias y placeholders del dialecto.
package sqlbuild

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// Dialect dialecto SQL destino.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) placeholders() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// SQLQuery sentencia lista para el driver.
type SQLQuery struct {
	SQL  string
	Args []interface{}
}

// Builder arma sentencias a partir del esquema.
type Builder struct {
	schema  *query.Schema
	dialect Dialect
}

// New construye el builder para el dialecto.
func New(schema *query.Schema, dialect Dialect) *Builder {
	return &Builder{schema: schema, dialect: dialect}
}

// source entidad raíz, uniones resueltas y alias disponibles.
type source struct {
	root     *query.Entity
	entities []*query.Entity
	joins    []string
	kinds    []query.JoinKind
	allowed  map[string]bool
}

func (b *Builder) resolve(d query.Description) (source, error) {
	root, err := b.schema.Entity(d.Entity)
	if err != nil {
		return source{}, err
	}
	src := source{
		root:     root,
		entities: []*query.Entity{root},
		allowed:  map[string]bool{root.Alias: true},
	}
	for _, j := range d.Joins {
		a, err := b.schema.Association(j.Owner, j.Association)
		if err != nil {
			return source{}, err
		}
		owner, _ := b.schema.Entity(a.Owner)
		target, _ := b.schema.Entity(a.Target)
		if !src.allowed[owner.Alias] {
			return source{}, fmt.Errorf("%w: join %s.%s antes de unir %s", query.ErrUnknownField, j.Owner, j.Association, j.Owner)
		}
		if src.allowed[target.Alias] {
			return source{}, fmt.Errorf("%w: alias %q repetido", query.ErrUnsupportedStrategy, target.Alias)
		}
		src.allowed[target.Alias] = true
		src.entities = append(src.entities, target)
		src.joins = append(src.joins, fmt.Sprintf("%s %s ON %s = %s",
			target.Table, target.Alias, owner.Field(a.OwnerColumn), target.Field(a.TargetColumn)))
		src.kinds = append(src.kinds, j.Kind)
	}
	return src, nil
}

func (src source) from(builder sq.SelectBuilder) sq.SelectBuilder {
	builder = builder.From(src.root.Table + " " + src.root.Alias)
	for i, j := range src.joins {
		if src.kinds[i] == query.InnerJoin {
			builder = builder.Join(j)
		} else {
			builder = builder.LeftJoin(j)
		}
	}
	return builder
}

// columns devuelve "alias.col AS "alias.col"" para cada columna de las entidades seleccionadas.
func (src source) columns() []string {
	var cols []string
	for _, e := range src.entities {
		for _, c := range e.Columns {
			f := e.Field(c)
			cols = append(cols, fmt.Sprintf(`%s AS "%s"`, f, f))
		}
	}
	return cols
}

func (b *Builder) where(p query.Predicate, allowed map[string]bool) (sq.And, error) {
	conds := p.Conds()
	out := make(sq.And, 0, len(conds))
	for _, c := range conds {
		if err := b.schema.ResolveField(c.Field, allowed); err != nil {
			return nil, err
		}
		col := string(c.Field)
		switch c.Op {
		case query.OpEq:
			out = append(out, sq.Eq{col: c.Value})
		case query.OpGoe:
			out = append(out, sq.GtOrEq{col: c.Value})
		case query.OpLoe:
			out = append(out, sq.LtOrEq{col: c.Value})
		case query.OpIn:
			out = append(out, sq.Eq{col: c.Values})
		default:
			return nil, fmt.Errorf("%w: operador %q", query.ErrInvalidCriteria, c.Op)
		}
	}
	return out, nil
}

// Select arma el SELECT de filas de la descripción.
func (b *Builder) Select(d query.Description) (SQLQuery, error) {
	if d.Projection == query.ProjectCount {
		return b.Count(d)
	}
	src, err := b.resolve(d)
	if err != nil {
		return SQLQuery{}, err
	}
	where, err := b.where(d.Filter, src.allowed)
	if err != nil {
		return SQLQuery{}, err
	}
	builder := src.from(sq.Select(src.columns()...))
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	orderBy := make([]string, 0, len(d.Sort))
	for _, o := range d.Sort {
		if err := b.schema.ResolveField(o.Field, src.allowed); err != nil {
			return SQLQuery{}, err
		}
		if o.Direction != query.Asc && o.Direction != query.Desc {
			return SQLQuery{}, fmt.Errorf("%w: dirección %q", query.ErrInvalidPagination, o.Direction)
		}
		orderBy = append(orderBy, fmt.Sprintf("%s %s", o.Field, o.Direction))
	}
	if len(orderBy) > 0 {
		builder = builder.OrderBy(orderBy...)
	}

	if d.Offset < 0 || d.Limit < 0 || (d.Offset > 0 && d.Limit == 0) {
		return SQLQuery{}, fmt.Errorf("%w: offset %d limit %d", query.ErrInvalidPagination, d.Offset, d.Limit)
	}
	if d.Limit > 0 {
		builder = builder.Limit(uint64(d.Limit))
	}
	if d.Offset > 0 {
		builder = builder.Offset(uint64(d.Offset))
	}

	sqlStr, args, err := builder.PlaceholderFormat(b.dialect.placeholders()).ToSql()
	if err != nil {
		return SQLQuery{}, fmt.Errorf("build select %s: %w", d.Entity, err)
	}
	return SQLQuery{SQL: sqlStr, Args: args}, nil
}

// Count arma el SELECT COUNT con las mismas uniones y filtro; ignora orden, offset y límite.
func (b *Builder) Count(d query.Description) (SQLQuery, error) {
	src, err := b.resolve(d)
	if err != nil {
		return SQLQuery{}, err
	}
	where, err := b.where(d.Filter, src.allowed)
	if err != nil {
		return SQLQuery{}, err
	}
	builder := src.from(sq.Select(fmt.Sprintf("COUNT(DISTINCT %s)", src.root.KeyField())))
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	sqlStr, args, err := builder.PlaceholderFormat(b.dialect.placeholders()).ToSql()
	if err != nil {
		return SQLQuery{}, fmt.Errorf("build count %s: %w", d.Entity, err)
	}
	return SQLQuery{SQL: sqlStr, Args: args}, nil
}

// Insert arma un INSERT multi-fila sobre la tabla de la entidad con las columnas dadas.
func (b *Builder) Insert(entity string, columns []string, rows [][]interface{}) (SQLQuery, error) {
	e, err := b.schema.Entity(entity)
	if err != nil {
		return SQLQuery{}, err
	}
	for _, c := range columns {
		if !e.HasColumn(c) {
			return SQLQuery{}, fmt.Errorf("%w: %s.%s", query.ErrUnknownField, entity, c)
		}
	}
	builder := sq.Insert(e.Table).Columns(columns...)
	for _, r := range rows {
		if len(r) != len(columns) {
			return SQLQuery{}, fmt.Errorf("insert %s: %d valores para %d columnas", entity, len(r), len(columns))
		}
		builder = builder.Values(r...)
	}
	sqlStr, args, err := builder.PlaceholderFormat(b.dialect.placeholders()).ToSql()
	if err != nil {
		return SQLQuery{}, fmt.Errorf("build insert %s: %w", entity, err)
	}
	return SQLQuery{SQL: sqlStr, Args: args}, nil
}

// Statements separa un script DDL en sentencias individuales.
func Statements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
