package query

import (
	"fmt"
	"strings"
)

// Strategy política de carga de colecciones a-muchos. Solo una está activa por petición.
type Strategy int

const (
	// StrategyNaive un query por padre y colección (1 + N·A). Línea base, camino lento.
	StrategyNaive Strategy = iota
	// StrategyEagerJoin un único join con la colección; sin paginación y con una sola colección.
	StrategyEagerJoin
	// StrategyBatched padres paginados + un query IN por colección (1 + A, sin contar lotes).
	StrategyBatched
	// StrategyFlat un único query plano que se reagrupa en memoria; sin paginación.
	StrategyFlat
)

var strategyNames = map[Strategy]string{
	StrategyNaive:     "naive",
	StrategyEagerJoin: "eager",
	StrategyBatched:   "batched",
	StrategyFlat:      "flat",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Valid indica si la estrategia es una de las cuatro conocidas.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Strategies devuelve las cuatro estrategias en orden.
func Strategies() []Strategy {
	return []Strategy{StrategyNaive, StrategyEagerJoin, StrategyBatched, StrategyFlat}
}

// ParseStrategy interpreta "naive", "eager", "batched" o "flat".
func ParseStrategy(s string) (Strategy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range strategyNames {
		if n == name {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: estrategia %q", ErrUnsupportedStrategy, s)
}

// Request lo que el llamador quiere cargar: entidad raíz, uniones a-uno, colecciones a-muchos,
// filtro y orden.
type Request struct {
	Entity      string
	Joins       []string
	Collections []string
	Filter      Predicate
	Sort        Sort
}

// Collection colección a-muchos resuelta contra el esquema.
type Collection struct {
	Association Association
	Target      *Entity
	With        []Association
	withAliases []string
}

// Name nombre de la asociación.
func (c Collection) Name() string { return c.Association.Name }

// KeyField identidad de cada hijo.
func (c Collection) KeyField() Field { return c.Target.KeyField() }

// ParentField columna del hijo que apunta al padre (ej. oi.order_id).
func (c Collection) ParentField() Field { return c.Target.Field(c.Association.TargetColumn) }

// Aliases alias de las columnas que forman cada hijo (destino + sus uniones a-uno).
func (c Collection) Aliases() []string {
	out := make([]string, 0, 1+len(c.withAliases))
	out = append(out, c.Target.Alias)
	return append(out, c.withAliases...)
}

// Plan conjunto de descripciones que una estrategia necesita; nunca ejecuta nada.
type Plan struct {
	Strategy      Strategy
	Root          *Entity
	ParentAliases []string
	Main          Description
	Count         *Description
	Collections   []Collection
	Page          *PageRequest
}

// RootKey campo clave de la entidad raíz.
func (p Plan) RootKey() Field { return p.Root.KeyField() }

// OwnerField campo del padre con el que se une la colección (ej. o.id).
func (p Plan) OwnerField(c Collection) Field { return p.Root.Field(c.Association.OwnerColumn) }

// ChildQuery describe la carga de los hijos de una colección para las claves de padre dadas:
// igualdad con una sola clave, IN con varias; ordenado por la clave del hijo.
func (p Plan) ChildQuery(c Collection, keys ...any) Description {
	var filter Predicate
	if len(keys) == 1 {
		filter = Eq(c.ParentField(), keys[0])
	} else {
		filter = In(c.ParentField(), keys...)
	}
	joins := make([]Join, 0, len(c.With))
	for _, w := range c.With {
		joins = append(joins, Join{Owner: w.Owner, Association: w.Name, Kind: LeftJoin})
	}
	return Description{
		Entity: c.Target.Name,
		Joins:  joins,
		Filter: filter,
		Sort:   Sort{By(c.KeyField(), Asc)},
	}
}

// Planner arma planes a partir del esquema. maxLimit acota el tamaño de página (0 = sin tope).
type Planner struct {
	schema   *Schema
	maxLimit int
}

// NewPlanner construye el planificador.
func NewPlanner(schema *Schema, maxLimit int) *Planner {
	return &Planner{schema: schema, maxLimit: maxLimit}
}

// Schema devuelve el esquema del planificador.
func (pl *Planner) Schema() *Schema { return pl.schema }

// MaxLimit tamaño máximo de página aceptado.
func (pl *Planner) MaxLimit() int { return pl.maxLimit }

// Plan valida la petición para la estrategia y arma las descripciones. Todos los errores de
// combinación se detectan aquí, antes de emitir cualquier query.
func (pl *Planner) Plan(req Request, page *PageRequest, strategy Strategy) (Plan, error) {
	if !strategy.Valid() {
		return Plan{}, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, strategy)
	}
	if page != nil {
		if err := page.Validate(pl.maxLimit); err != nil {
			return Plan{}, err
		}
	}
	root, err := pl.schema.Entity(req.Entity)
	if err != nil {
		return Plan{}, err
	}

	used := map[string]bool{root.Alias: true}
	parentAliases := []string{root.Alias}
	joins := make([]Join, 0, len(req.Joins))
	for _, name := range req.Joins {
		a, err := pl.schema.Association(root.Name, name)
		if err != nil {
			return Plan{}, err
		}
		if a.Cardinality != ToOne {
			return Plan{}, fmt.Errorf("%w: %s.%s es a-muchos; debe pedirse como colección", ErrUnsupportedStrategy, root.Name, name)
		}
		target, _ := pl.schema.Entity(a.Target)
		if used[target.Alias] {
			return Plan{}, fmt.Errorf("%w: alias %q repetido", ErrUnsupportedStrategy, target.Alias)
		}
		used[target.Alias] = true
		parentAliases = append(parentAliases, target.Alias)
		joins = append(joins, Join{Owner: root.Name, Association: name, Kind: LeftJoin})
	}

	collections := make([]Collection, 0, len(req.Collections))
	for _, name := range req.Collections {
		c, err := pl.collection(root, name, used)
		if err != nil {
			return Plan{}, err
		}
		collections = append(collections, c)
	}

	switch strategy {
	case StrategyEagerJoin:
		if len(collections) > 1 {
			return Plan{}, fmt.Errorf("%w: eager join admite una sola colección a-muchos, se pidieron %d", ErrUnsupportedStrategy, len(collections))
		}
		if page != nil {
			return Plan{}, fmt.Errorf("%w: eager join no admite offset/limit; use batched", ErrUnsupportedStrategy)
		}
	case StrategyFlat:
		if page != nil {
			return Plan{}, fmt.Errorf("%w: flat no admite offset/limit; use batched", ErrUnsupportedStrategy)
		}
	}

	sort := req.Sort
	if page != nil && len(page.Sort) > 0 {
		sort = page.Sort
	}
	allowed := make(map[string]bool, len(parentAliases))
	for _, a := range parentAliases {
		allowed[a] = true
	}
	for _, f := range req.Filter.Fields() {
		if err := pl.schema.ResolveField(f, allowed); err != nil {
			return Plan{}, err
		}
	}
	for _, o := range sort {
		if err := pl.schema.ResolveField(o.Field, allowed); err != nil {
			return Plan{}, err
		}
		if o.Direction != Asc && o.Direction != Desc {
			return Plan{}, fmt.Errorf("%w: dirección %q", ErrInvalidPagination, o.Direction)
		}
	}

	main := Description{
		Entity: root.Name,
		Joins:  joins,
		Filter: req.Filter,
		Sort:   withTiebreak(sort, root.KeyField()),
	}
	plan := Plan{
		Strategy:      strategy,
		Root:          root,
		ParentAliases: parentAliases,
		Collections:   collections,
	}

	switch strategy {
	case StrategyNaive, StrategyBatched:
		if page != nil {
			p := *page
			plan.Page = &p
			main.Offset = page.Offset
			main.Limit = page.Limit
			count := main.CountQuery()
			plan.Count = &count
		}
	case StrategyEagerJoin, StrategyFlat:
		for _, c := range collections {
			main.Joins = append(main.Joins, Join{Owner: root.Name, Association: c.Name(), Kind: LeftJoin})
			for _, w := range c.With {
				main.Joins = append(main.Joins, Join{Owner: w.Owner, Association: w.Name, Kind: LeftJoin})
			}
		}
		for _, c := range collections {
			main.Sort = withTiebreak(main.Sort, c.KeyField())
		}
	}
	plan.Main = main
	return plan, nil
}

func (pl *Planner) collection(root *Entity, name string, used map[string]bool) (Collection, error) {
	a, err := pl.schema.Association(root.Name, name)
	if err != nil {
		return Collection{}, err
	}
	if a.Cardinality != ToMany {
		return Collection{}, fmt.Errorf("%w: %s.%s es a-uno; debe pedirse como unión", ErrUnsupportedStrategy, root.Name, name)
	}
	target, _ := pl.schema.Entity(a.Target)
	if used[target.Alias] {
		return Collection{}, fmt.Errorf("%w: alias %q repetido", ErrUnsupportedStrategy, target.Alias)
	}
	used[target.Alias] = true
	c := Collection{Association: a, Target: target}
	for _, w := range a.With {
		wa, err := pl.schema.Association(target.Name, w)
		if err != nil {
			return Collection{}, err
		}
		we, _ := pl.schema.Entity(wa.Target)
		if used[we.Alias] {
			return Collection{}, fmt.Errorf("%w: alias %q repetido", ErrUnsupportedStrategy, we.Alias)
		}
		used[we.Alias] = true
		c.With = append(c.With, wa)
		c.withAliases = append(c.withAliases, we.Alias)
	}
	return c, nil
}

func withTiebreak(s Sort, key Field) Sort {
	out := make(Sort, len(s), len(s)+1)
	copy(out, s)
	if !out.has(key) {
		out = append(out, By(key, Asc))
	}
	return out
}
