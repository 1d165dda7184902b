package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field referencia una columna del esquema como "alias.columna" (ej. m.username).
type Field string

// Col construye un Field a partir de alias y columna.
func Col(alias, column string) Field {
	return Field(alias + "." + column)
}

// Alias devuelve la parte del alias ("m" en "m.username").
func (f Field) Alias() string {
	a, _, _ := strings.Cut(string(f), ".")
	return a
}

// Column devuelve la parte de la columna ("username" en "m.username").
func (f Field) Column() string {
	_, c, _ := strings.Cut(string(f), ".")
	return c
}

// Op operador de comparación de una condición.
type Op string

const (
	OpEq  Op = "eq"
	OpGoe Op = "goe"
	OpLoe Op = "loe"
	OpIn  Op = "in"
)

// Cond es una comparación atómica sobre un campo. Values solo se usa con OpIn.
type Cond struct {
	Field  Field
	Op     Op
	Value  any
	Values []any
}

func (c Cond) String() string {
	if c.Op == OpIn {
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = fmt.Sprint(v)
		}
		return fmt.Sprintf("%s in (%s)", c.Field, strings.Join(parts, ","))
	}
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

// Predicate es una conjunción (AND) de condiciones. El valor cero es la identidad: no restringe nada.
type Predicate struct {
	conds []Cond
}

// Eq predicado de igualdad.
func Eq(f Field, v any) Predicate {
	return Predicate{conds: []Cond{{Field: f, Op: OpEq, Value: v}}}
}

// Goe predicado "mayor o igual".
func Goe(f Field, v any) Predicate {
	return Predicate{conds: []Cond{{Field: f, Op: OpGoe, Value: v}}}
}

// Loe predicado "menor o igual".
func Loe(f Field, v any) Predicate {
	return Predicate{conds: []Cond{{Field: f, Op: OpLoe, Value: v}}}
}

// In predicado de pertenencia. Con una lista vacía no coincide con nada.
func In(f Field, values ...any) Predicate {
	vs := make([]any, len(values))
	copy(vs, values)
	return Predicate{conds: []Cond{{Field: f, Op: OpIn, Values: vs}}}
}

// And combina predicados por conjunción. Es asociativa y el orden de los operandos no altera el resultado.
func And(preds ...Predicate) Predicate {
	n := 0
	for _, p := range preds {
		n += len(p.conds)
	}
	if n == 0 {
		return Predicate{}
	}
	out := make([]Cond, 0, n)
	for _, p := range preds {
		out = append(out, p.conds...)
	}
	return Predicate{conds: out}
}

// And devuelve p AND o.
func (p Predicate) And(o Predicate) Predicate {
	return And(p, o)
}

// IsIdentity indica si el predicado no tiene condiciones.
func (p Predicate) IsIdentity() bool {
	return len(p.conds) == 0
}

// Conds devuelve una copia de las condiciones en orden de construcción.
func (p Predicate) Conds() []Cond {
	out := make([]Cond, len(p.conds))
	copy(out, p.conds)
	return out
}

// Fields devuelve los campos referenciados, sin repetir.
func (p Predicate) Fields() []Field {
	seen := make(map[Field]struct{}, len(p.conds))
	var out []Field
	for _, c := range p.conds {
		if _, ok := seen[c.Field]; ok {
			continue
		}
		seen[c.Field] = struct{}{}
		out = append(out, c.Field)
	}
	return out
}

// String representación canónica (condiciones ordenadas), útil para logs y comparación.
func (p Predicate) String() string {
	if p.IsIdentity() {
		return "true"
	}
	parts := make([]string, len(p.conds))
	for i, c := range p.conds {
		parts[i] = c.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, " and ")
}

// Equivalent compara dos predicados sin importar el orden de sus condiciones.
func (p Predicate) Equivalent(o Predicate) bool {
	return p.String() == o.String()
}

// Matches evalúa el predicado en memoria. Un campo ausente o NULL nunca satisface una comparación.
func (p Predicate) Matches(r Record) bool {
	for _, c := range p.conds {
		if !c.matches(r) {
			return false
		}
	}
	return true
}

func (c Cond) matches(r Record) bool {
	v, ok := r.Value(c.Field)
	if !ok || v == nil {
		return false
	}
	switch c.Op {
	case OpEq:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp == 0
	case OpGoe:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp >= 0
	case OpLoe:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp <= 0
	case OpIn:
		for _, want := range c.Values {
			if cmp, ok := compareValues(v, want); ok && cmp == 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// compareValues compara números con números, textos con textos y fechas con fechas.
func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	if da, ok := toDecimal(a); ok {
		db, ok := toDecimal(b)
		if !ok {
			return 0, false
		}
		return da.Cmp(db), true
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case string, []byte:
		return decimal.Zero, false
	}
	if i, ok := toInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Zero, false
}
