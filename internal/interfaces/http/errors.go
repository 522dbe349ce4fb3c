package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/domain"
)

// respondError mapeia os erros sentinela do domínio para status HTTP. Erros
// embrulhados também casam.
func respondError(c *fiber.Ctx, err error) error {
	var mismatch *domain.SchemaMismatchError
	if errors.As(err, &mismatch) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SCHEMA_MISMATCH", Message: mismatch.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: "outra operação de escrita em curso, tente de novo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
