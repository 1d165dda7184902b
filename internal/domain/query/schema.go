package query

import "fmt"

// Cardinality cardinalidad de una asociación vista desde su dueño.
type Cardinality int

const (
	ToOne Cardinality = iota
	ToMany
)

// Entity metadatos de una tabla: nombre lógico, tabla, alias único y columnas seleccionables.
type Entity struct {
	Name    string
	Table   string
	Alias   string
	Key     string
	Columns []string
}

// Field devuelve el campo calificado con el alias de la entidad.
func (e *Entity) Field(column string) Field { return Col(e.Alias, column) }

// KeyField campo de la clave primaria.
func (e *Entity) KeyField() Field { return e.Field(e.Key) }

// HasColumn indica si la columna pertenece a la entidad.
func (e *Entity) HasColumn(column string) bool {
	for _, c := range e.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Association relación Owner.Name -> Target unida por Owner.OwnerColumn = Target.TargetColumn.
// With lista asociaciones a-uno del destino que se cargan junto con la colección.
type Association struct {
	Owner        string
	Name         string
	Target       string
	Cardinality  Cardinality
	OwnerColumn  string
	TargetColumn string
	With         []string
}

// Schema registro inmutable de entidades y asociaciones.
type Schema struct {
	entities map[string]*Entity
	aliases  map[string]*Entity
	assocs   map[string]map[string]Association
}

// NewSchema valida y registra las entidades y asociaciones.
func NewSchema(entities []Entity, assocs []Association) (*Schema, error) {
	s := &Schema{
		entities: make(map[string]*Entity, len(entities)),
		aliases:  make(map[string]*Entity, len(entities)),
		assocs:   make(map[string]map[string]Association),
	}
	for i := range entities {
		e := entities[i]
		if _, dup := s.entities[e.Name]; dup {
			return nil, fmt.Errorf("entidad %q duplicada", e.Name)
		}
		if _, dup := s.aliases[e.Alias]; dup {
			return nil, fmt.Errorf("alias %q duplicado", e.Alias)
		}
		if !e.HasColumn(e.Key) {
			return nil, fmt.Errorf("la clave %q no es columna de %q", e.Key, e.Name)
		}
		cols := make([]string, len(e.Columns))
		copy(cols, e.Columns)
		e.Columns = cols
		s.entities[e.Name] = &e
		s.aliases[e.Alias] = &e
	}
	for _, a := range assocs {
		owner, ok := s.entities[a.Owner]
		if !ok {
			return nil, fmt.Errorf("asociación %s.%s: dueño desconocido", a.Owner, a.Name)
		}
		target, ok := s.entities[a.Target]
		if !ok {
			return nil, fmt.Errorf("asociación %s.%s: destino desconocido", a.Owner, a.Name)
		}
		if !owner.HasColumn(a.OwnerColumn) || !target.HasColumn(a.TargetColumn) {
			return nil, fmt.Errorf("asociación %s.%s: columnas de unión inválidas", a.Owner, a.Name)
		}
		if s.assocs[a.Owner] == nil {
			s.assocs[a.Owner] = make(map[string]Association)
		}
		with := make([]string, len(a.With))
		copy(with, a.With)
		a.With = with
		s.assocs[a.Owner][a.Name] = a
	}
	for _, byName := range s.assocs {
		for _, a := range byName {
			for _, w := range a.With {
				wa, ok := s.assocs[a.Target][w]
				if !ok || wa.Cardinality != ToOne {
					return nil, fmt.Errorf("asociación %s.%s: with %q debe ser a-uno de %s", a.Owner, a.Name, w, a.Target)
				}
			}
		}
	}
	return s, nil
}

// MustSchema como NewSchema pero entra en pánico; pensado para catálogos estáticos.
func MustSchema(entities []Entity, assocs []Association) *Schema {
	s, err := NewSchema(entities, assocs)
	if err != nil {
		panic("query: " + err.Error())
	}
	return s
}

// Entity busca una entidad por nombre.
func (s *Schema) Entity(name string) (*Entity, error) {
	e, ok := s.entities[name]
	if !ok {
		return nil, fmt.Errorf("%w: entidad %q", ErrUnknownField, name)
	}
	return e, nil
}

// EntityByAlias busca una entidad por alias.
func (s *Schema) EntityByAlias(alias string) (*Entity, bool) {
	e, ok := s.aliases[alias]
	return e, ok
}

// Association busca una asociación por dueño y nombre.
func (s *Schema) Association(owner, name string) (Association, error) {
	a, ok := s.assocs[owner][name]
	if !ok {
		return Association{}, fmt.Errorf("%w: asociación %s.%s", ErrUnknownField, owner, name)
	}
	return a, nil
}

// ResolveField valida que el campo exista y que su alias esté entre los permitidos.
func (s *Schema) ResolveField(f Field, allowed map[string]bool) error {
	e, ok := s.aliases[f.Alias()]
	if !ok || !e.HasColumn(f.Column()) {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if allowed != nil && !allowed[f.Alias()] {
		return fmt.Errorf("%w: %s no está disponible en esta consulta", ErrUnknownField, f)
	}
	return nil
}
