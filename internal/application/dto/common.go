package dto

import (
	"fmt"
	"strings"

	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// PageRequest paginación para listados. Sort admite valores repetidos "propiedad,dirección".
// Limit nil significa que el cliente no lo envió; un cero explícito se valida como cualquier otro.
type PageRequest struct {
	Limit  *int     `query:"limit"`
	Offset int      `query:"offset"`
	Sort   []string `query:"sort"`
}

// ToQuery aplica el limit por defecto solo cuando no se envió y traduce el orden. No recorta
// valores fuera de rango: el planificador los rechaza.
func (p PageRequest) ToQuery(sortable map[string]query.Field, defaultLimit int) (query.PageRequest, error) {
	sort, err := ParseSort(p.Sort, sortable)
	if err != nil {
		return query.PageRequest{}, err
	}
	limit := defaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	return query.PageRequest{Offset: p.Offset, Limit: limit, Sort: sort}, nil
}

// WithLimit devuelve una copia con el limit fijado.
func (p PageRequest) WithLimit(n int) PageRequest {
	p.Limit = &n
	return p
}

// ParseSort traduce "age,desc" o "username" a términos de orden sobre propiedades permitidas.
func ParseSort(values []string, sortable map[string]query.Field) (query.Sort, error) {
	var out query.Sort
	for _, raw := range values {
		for _, term := range strings.Split(raw, ";") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			prop, dir, _ := strings.Cut(term, ",")
			f, ok := sortable[strings.TrimSpace(prop)]
			if !ok {
				return nil, fmt.Errorf("%w: propiedad de orden %q", query.ErrUnknownField, prop)
			}
			d, err := query.ParseDirection(dir)
			if err != nil {
				return nil, err
			}
			out = append(out, query.By(f, d))
		}
	}
	return out, nil
}

// ParseStrategy interpreta la estrategia pedida; vacío usa def.
func ParseStrategy(s string, def query.Strategy) (query.Strategy, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return query.ParseStrategy(s)
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Total      *int64 `json:"total,omitempty"`
	TotalPages int    `json:"total_pages,omitempty"`
	HasNext    bool   `json:"has_next"`
}

// NewPageResponse copia los metadatos de una página.
func NewPageResponse[T any](p query.PageResult[T]) PageResponse {
	return PageResponse{
		Limit:      p.Limit,
		Offset:     p.Offset,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
		HasNext:    p.HasNext(),
	}
}

// SliceResponse metadatos de un slice (sin total).
type SliceResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"has_next"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
