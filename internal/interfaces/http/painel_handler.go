package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	appestoque "github.com/lucashm/pousada-ops-api/internal/application/estoque"
)

// PainelHandler trata o painel de gastos.
type PainelHandler struct {
	uc *appestoque.PainelUseCase
}

// NewPainelHandler constrói o handler.
func NewPainelHandler(uc *appestoque.PainelUseCase) *PainelHandler {
	return &PainelHandler{uc: uc}
}

// Gastos devolve as linhas de compra filtradas e os agregados por mês,
// fornecedor e categoria. Os filtros vêm da query string.
func (h *PainelHandler) Gastos(c *fiber.Ctx) error {
	var in dto.PainelGastosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.uc.Gastos(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
