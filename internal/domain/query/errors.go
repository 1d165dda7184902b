package query

import "errors"

// Errores del motor de consultas. Los de planificación se devuelven antes de ejecutar cualquier consulta.
var (
	ErrInvalidPagination   = errors.New("paginación inválida")
	ErrUnsupportedStrategy = errors.New("combinación de estrategia no soportada")
	ErrAmbiguousResult     = errors.New("la consulta de resultado único devolvió más de una fila")
	ErrUnknownField        = errors.New("campo o asociación desconocida")
	ErrInvalidCriteria     = errors.New("criterio de búsqueda inválido")
	ErrInvalidBatchSize    = errors.New("tamaño de lote inválido")
)
