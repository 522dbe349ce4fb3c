package http

import (
	"github.com/gofiber/fiber/v2"

	appauditoria "github.com/lucashm/pousada-ops-api/internal/application/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/application/dto"
)

// AuditoriaHandler trata as importações da auditoria noturna e a consulta dos
// dias.
type AuditoriaHandler struct {
	uc *appauditoria.ImportUseCase
}

// NewAuditoriaHandler constrói o handler.
func NewAuditoriaHandler(uc *appauditoria.ImportUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// ImportarOmnibees processa o relatório primário e cria o dia de auditoria.
func (h *AuditoriaHandler) ImportarOmnibees(c *fiber.Ctx) error {
	var in dto.ImportarGridRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	in.Usuario = GetUserID(c)
	out, err := h.uc.ImportarOmnibees(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ImportarNiara aplica as confirmações do gateway sobre o dia inferido.
func (h *AuditoriaHandler) ImportarNiara(c *fiber.Ctx) error {
	var in dto.ImportarGridRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	in.Usuario = GetUserID(c)
	out, err := h.uc.ImportarNiara(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ImportarBee2Pay aplica as transações do processador de canal.
func (h *AuditoriaHandler) ImportarBee2Pay(c *fiber.Ctx) error {
	var in dto.ImportarGridRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	in.Usuario = GetUserID(c)
	out, err := h.uc.ImportarBee2Pay(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConsultarDia devolve um dia de auditoria com os blocos. O rótulo contém
// barras (dd/MM/yyyy), por isso vem na query string e não no path.
func (h *AuditoriaHandler) ConsultarDia(c *fiber.Ctx) error {
	rotulo := c.Query("rotulo")
	if rotulo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rotulo é requerido"})
	}
	out, err := h.uc.ConsultarDia(c.Context(), rotulo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
