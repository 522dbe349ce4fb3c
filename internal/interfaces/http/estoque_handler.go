package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	appestoque "github.com/lucashm/pousada-ops-api/internal/application/estoque"
)

// EstoqueHandler trata as operações de escrita e consulta do estoque:
// produtos, notas de compra, contagens de inventário e recomputação de
// consumo.
type EstoqueHandler struct {
	produtoUC    *appestoque.ProdutoUseCase
	notaUC       *appestoque.NotaUseCase
	inventarioUC *appestoque.InventarioUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(produtoUC *appestoque.ProdutoUseCase, notaUC *appestoque.NotaUseCase, inventarioUC *appestoque.InventarioUseCase) *EstoqueHandler {
	return &EstoqueHandler{produtoUC: produtoUC, notaUC: notaUC, inventarioUC: inventarioUC}
}

// CriarProduto cadastra um produto novo.
func (h *EstoqueHandler) CriarProduto(c *fiber.Ctx) error {
	var in dto.CriarProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.produtoUC.Criar(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarProdutos devolve o cadastro. ?ativos=true filtra os inativos.
func (h *EstoqueHandler) ListarProdutos(c *fiber.Ctx) error {
	out, err := h.produtoUC.Listar(c.QueryBool("ativos"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RelatorioEstoque devolve o estoque atual derivado do ledger, com o status
// BAIXO/OK contra o mínimo.
func (h *EstoqueHandler) RelatorioEstoque(c *fiber.Ctx) error {
	out, err := h.produtoUC.RelatorioEstoque()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListarMovimentos devolve o ledger de um produto. ?produto= é obrigatório.
func (h *EstoqueHandler) ListarMovimentos(c *fiber.Ctx) error {
	out, err := h.produtoUC.Movimentos(c.Query("produto"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegistrarNota lança uma nota de compra e os movimentos de entrada.
func (h *EstoqueHandler) RegistrarNota(c *fiber.Ctx) error {
	var in dto.RegistrarNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.notaUC.Registrar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegistrarInventario lança uma contagem física com os ajustes derivados.
func (h *EstoqueHandler) RegistrarInventario(c *fiber.Ctx) error {
	var in dto.RegistrarInventarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.inventarioUC.Registrar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConsultarConsumo devolve o consumo apurado de uma contagem de inventário.
func (h *EstoqueHandler) ConsultarConsumo(c *fiber.Ctx) error {
	out, err := h.inventarioUC.ConsultarConsumo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecalcularConsumo recomputa o consumo de uma contagem, ou de todas quando o
// corpo vem sem inventario_id.
func (h *EstoqueHandler) RecalcularConsumo(c *fiber.Ctx) error {
	var in dto.RecalcularConsumoRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	out, err := h.inventarioUC.RecalcularConsumo(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
