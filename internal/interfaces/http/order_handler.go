package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-query-api/internal/application/dto"
	"github.com/jhoicas/shop-query-api/internal/application/usecase"
	"github.com/jhoicas/shop-query-api/internal/domain"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

type OrderHandler struct {
	uc  *usecase.OrderQueryUseCase
	log *logger.Logger
}

func NewOrderHandler(uc *usecase.OrderQueryUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// List godoc
// @Summary Pedidos con miembro, envío e ítems
// @Description La estrategia elige cómo se cargan los ítems: naive, eager, batched o flat.
// @Tags orders
// @Param strategy query string false "Estrategia de carga"
// @Param memberName query string false "Usuario del miembro"
// @Param orderStatus query string false "ORDER o CANCEL"
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: parámetros de búsqueda", domain.ErrInvalidInput))
	}
	out, err := h.uc.List(c.UserContext(), in, c.Query("strategy"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Page godoc
// @Summary Página de pedidos
// @Description Solo naive y batched admiten paginación; por defecto batched.
// @Tags orders
// @Param offset query int false "Desplazamiento"
// @Param limit query int false "Tamaño de página"
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders/page [get]
func (h *OrderHandler) Page(c *fiber.Ctx) error {
	var in dto.OrderSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: parámetros de búsqueda", domain.ErrInvalidInput))
	}
	page, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.ListPage(c.UserContext(), in, page, c.Query("strategy"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
