package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Criteria mapea nombre de filtro a un valor opcional. nil o texto en blanco significa "sin restricción".
type Criteria map[string]any

// FilterKind tipo de comparación de un filtro reconocido.
type FilterKind int

const (
	KindText FilterKind = iota
	KindLowerBound
	KindUpperBound
)

// Filter asocia un nombre de criterio con el campo que restringe.
type Filter struct {
	Name  string
	Field Field
	Kind  FilterKind
}

// Text filtro de igualdad exacta sobre texto.
func Text(name string, f Field) Filter { return Filter{Name: name, Field: f, Kind: KindText} }

// AtLeast filtro numérico "mayor o igual".
func AtLeast(name string, f Field) Filter { return Filter{Name: name, Field: f, Kind: KindLowerBound} }

// AtMost filtro numérico "menor o igual".
func AtMost(name string, f Field) Filter { return Filter{Name: name, Field: f, Kind: KindUpperBound} }

// Composer convierte Criteria en un Predicate usando los filtros reconocidos.
type Composer struct {
	filters []Filter
}

// NewComposer construye el compositor. El orden de los filtros solo afecta el orden de las condiciones.
func NewComposer(filters ...Filter) Composer {
	fs := make([]Filter, len(filters))
	copy(fs, filters)
	return Composer{filters: fs}
}

// Filters devuelve los filtros reconocidos.
func (c Composer) Filters() []Filter {
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Compose produce la conjunción de los criterios presentes; las claves no reconocidas se ignoran.
// Solo falla si un valor presente no es convertible al tipo del filtro.
func (c Composer) Compose(cr Criteria) (Predicate, error) {
	parts := make([]Predicate, 0, len(c.filters))
	for _, f := range c.filters {
		p, ok, err := compose(f, cr[f.Name])
		if err != nil {
			return Predicate{}, err
		}
		if ok {
			parts = append(parts, p)
		}
	}
	return And(parts...), nil
}

func compose(f Filter, v any) (Predicate, bool, error) {
	switch f.Kind {
	case KindText:
		return textEq(f, v)
	case KindLowerBound:
		n, ok, err := numeric(f, v)
		if !ok || err != nil {
			return Predicate{}, false, err
		}
		return Goe(f.Field, n), true, nil
	case KindUpperBound:
		n, ok, err := numeric(f, v)
		if !ok || err != nil {
			return Predicate{}, false, err
		}
		return Loe(f.Field, n), true, nil
	default:
		return Predicate{}, false, fmt.Errorf("%w: tipo de filtro %d", ErrInvalidCriteria, f.Kind)
	}
}

func textEq(f Filter, v any) (Predicate, bool, error) {
	s, ok := deref(v)
	if !ok {
		return Predicate{}, false, nil
	}
	text, isText := s.(string)
	if !isText {
		return Predicate{}, false, fmt.Errorf("%w: %s debe ser texto", ErrInvalidCriteria, f.Name)
	}
	if strings.TrimSpace(text) == "" {
		return Predicate{}, false, nil
	}
	return Eq(f.Field, text), true, nil
}

func numeric(f Filter, v any) (int64, bool, error) {
	raw, ok := deref(v)
	if !ok {
		return 0, false, nil
	}
	if s, isText := raw.(string); isText {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s debe ser numérico", ErrInvalidCriteria, f.Name)
		}
		return n, true, nil
	}
	n, isInt := toInt64(raw)
	if !isInt {
		return 0, false, fmt.Errorf("%w: %s debe ser numérico", ErrInvalidCriteria, f.Name)
	}
	return n, true, nil
}

// deref resuelve punteros; devuelve false si el valor está ausente.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}
