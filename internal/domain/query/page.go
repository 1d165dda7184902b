package query

import (
	"context"
	"fmt"
	"strings"
)

// Direction dirección de ordenamiento.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection acepta "asc"/"desc" sin distinguir mayúsculas; vacío es ASC.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: dirección %q", ErrInvalidCriteria, s)
	}
}

// Order término de ordenamiento.
type Order struct {
	Field     Field
	Direction Direction
}

// Sort secuencia ordenada de términos.
type Sort []Order

// By atajo para construir un término.
func By(f Field, d Direction) Order { return Order{Field: f, Direction: d} }

func (s Sort) has(f Field) bool {
	for _, o := range s {
		if o.Field == f {
			return true
		}
	}
	return false
}

// PageRequest petición de página basada en offset.
type PageRequest struct {
	Offset int
	Limit  int
	Sort   Sort
}

// Validate rechaza offset negativo, limit no positivo o mayor que maxLimit (si maxLimit > 0).
// Un limit demasiado grande nunca se recorta en silencio.
func (p PageRequest) Validate(maxLimit int) error {
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset %d < 0", ErrInvalidPagination, p.Offset)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit %d <= 0", ErrInvalidPagination, p.Limit)
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		return fmt.Errorf("%w: limit %d > máximo %d", ErrInvalidPagination, p.Limit, maxLimit)
	}
	for _, o := range p.Sort {
		if o.Direction != Asc && o.Direction != Desc {
			return fmt.Errorf("%w: dirección %q", ErrInvalidPagination, o.Direction)
		}
	}
	return nil
}

// PageResult página de resultados. Total es nil cuando no se conoce.
type PageResult[T any] struct {
	Content []T
	Offset  int
	Limit   int
	Total   *int64
}

// TotalPages número de páginas; 0 si el total es desconocido.
func (p PageResult[T]) TotalPages() int {
	if p.Total == nil || p.Limit <= 0 {
		return 0
	}
	return int((*p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// HasNext indica si existen filas después de esta página.
func (p PageResult[T]) HasNext() bool {
	if p.Total == nil {
		return len(p.Content) == p.Limit
	}
	return int64(p.Offset+len(p.Content)) < *p.Total
}

// MapPage convierte el contenido conservando los metadatos de paginación.
func MapPage[T, U any](p PageResult[T], fn func(T) U) PageResult[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return PageResult[U]{Content: out, Offset: p.Offset, Limit: p.Limit, Total: p.Total}
}

// Slice página sin total: solo informa si hay más filas (se consulta limit+1).
type Slice[T any] struct {
	Content []T
	Offset  int
	Limit   int
	HasNext bool
}

// MapSlice convierte el contenido de un Slice.
func MapSlice[T, U any](s Slice[T], fn func(T) U) Slice[U] {
	out := make([]U, len(s.Content))
	for i, v := range s.Content {
		out[i] = fn(v)
	}
	return Slice[U]{Content: out, Offset: s.Offset, Limit: s.Limit, HasNext: s.HasNext}
}

// InferTotal decide si el total se deduce de la página leída sin consulta de conteo:
//   - primera página incompleta: total = contentSize;
//   - página incompleta y no vacía: es la última, total = offset + contentSize;
//   - página llena, o vacía con offset > 0: el total no es deducible.
func InferTotal(offset, limit, contentSize int) (int64, bool) {
	if offset == 0 && contentSize < limit {
		return int64(contentSize), true
	}
	if contentSize > 0 && contentSize < limit {
		return int64(offset + contentSize), true
	}
	return 0, false
}

// NewPage arma la página y solo invoca count cuando InferTotal no alcanza.
func NewPage[T any](ctx context.Context, content []T, req PageRequest, count func(context.Context) (int64, error)) (PageResult[T], error) {
	if content == nil {
		content = []T{}
	}
	page := PageResult[T]{Content: content, Offset: req.Offset, Limit: req.Limit}
	if total, ok := InferTotal(req.Offset, req.Limit, len(content)); ok {
		page.Total = &total
		return page, nil
	}
	total, err := count(ctx)
	if err != nil {
		return PageResult[T]{}, fmt.Errorf("count query: %w", err)
	}
	page.Total = &total
	return page, nil
}
