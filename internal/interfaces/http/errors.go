package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-query-api/internal/application/dto"
	"github.com/jhoicas/shop-query-api/internal/domain"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings único punto de traducción de errores de dominio a HTTP.
var errorMappings = []errorMapping{
	{query.ErrInvalidPagination, fiber.StatusBadRequest, "INVALID_PAGINATION"},
	{query.ErrInvalidCriteria, fiber.StatusBadRequest, "INVALID_CRITERIA"},
	{query.ErrUnknownField, fiber.StatusBadRequest, "UNKNOWN_FIELD"},
	{query.ErrUnsupportedStrategy, fiber.StatusBadRequest, "UNSUPPORTED_STRATEGY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{query.ErrAmbiguousResult, fiber.StatusConflict, "AMBIGUOUS_RESULT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
}

// respondError escribe el ErrorResponse correspondiente; los errores no mapeados son 500 y se registran.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	logger.FromContext(c.UserContext(), log).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// ErrorHandler para fiber.Config: rutas inexistentes, pánicos recuperados y errores no manejados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}
