package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-query-api/internal/application/dto"
	"github.com/jhoicas/shop-query-api/internal/application/usecase"
	"github.com/jhoicas/shop-query-api/internal/domain"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

type MemberHandler struct {
	uc  *usecase.MemberQueryUseCase
	log *logger.Logger
}

func NewMemberHandler(uc *usecase.MemberQueryUseCase, log *logger.Logger) *MemberHandler {
	return &MemberHandler{uc: uc, log: log}
}

func (h *MemberHandler) searchRequest(c *fiber.Ctx) (dto.MemberSearchRequest, error) {
	var in dto.MemberSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return in, fmt.Errorf("%w: parámetros de búsqueda", domain.ErrInvalidInput)
	}
	return in, nil
}

// Search godoc
// @Summary Buscar miembros con su equipo
// @Tags members
// @Param username query string false "Usuario exacto"
// @Param teamName query string false "Equipo exacto"
// @Param ageGoe query int false "Edad mínima"
// @Param ageLoe query int false "Edad máxima"
// @Param sort query []string false "propiedad,dirección"
// @Success 200 {object} map[string][]dto.MemberTeamResponse
// @Router /api/members [get]
func (h *MemberHandler) Search(c *fiber.Ctx) error {
	in, err := h.searchRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Search(c.UserContext(), in, sortParams(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Page godoc
// @Summary Página de miembros con total
// @Tags members
// @Param offset query int false "Desplazamiento"
// @Param limit query int false "Tamaño de página"
// @Success 200 {object} dto.MemberListResponse
// @Router /api/members/page [get]
func (h *MemberHandler) Page(c *fiber.Ctx) error {
	in, err := h.searchRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.SearchPage(c.UserContext(), in, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Slice godoc
// @Summary Página de miembros sin total (solo has_next)
// @Tags members
// @Success 200 {object} dto.MemberSliceResponse
// @Router /api/members/slice [get]
func (h *MemberHandler) Slice(c *fiber.Ctx) error {
	in, err := h.searchRequest(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.SearchSlice(c.UserContext(), in, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ByUsername godoc
// @Summary Miembro por nombre de usuario
// @Tags members
// @Param username path string true "Usuario"
// @Success 200 {object} dto.MemberTeamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/members/by-username/{username} [get]
func (h *MemberHandler) ByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username requerido"})
	}
	out, err := h.uc.FindByUsername(c.UserContext(), username)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "miembro no encontrado"})
	}
	return c.JSON(out)
}
