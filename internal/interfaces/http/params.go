package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-query-api/internal/application/dto"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// sortParams lee los parámetros sort repetidos sin partirlos por coma ("age,desc" es un término).
func sortParams(c *fiber.Ctx) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti("sort") {
		out = append(out, string(v))
	}
	return out
}

// pageParams lee offset y limit; un valor no numérico es paginación inválida. Un limit ausente
// queda en nil para que se aplique el tamaño por defecto; limit=0 llega tal cual a la validación.
func pageParams(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	for _, key := range []string{"offset", "limit"} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return dto.PageRequest{}, fmt.Errorf("%w: %s=%q", query.ErrInvalidPagination, key, raw)
		}
		if key == "offset" {
			p.Offset = n
		} else {
			p.Limit = &n
		}
	}
	p.Sort = sortParams(c)
	return p, nil
}
