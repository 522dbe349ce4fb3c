package estoque_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	appestoque "github.com/lucashm/pousada-ops-api/internal/application/estoque"
	"github.com/lucashm/pousada-ops-api/internal/application/oplock"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

func novoInventarioUC(s *memStore) *appestoque.InventarioUseCase {
	return appestoque.NewInventarioUseCase(txRunner{s}, oplock.New(time.Second), testLogger())
}

func seedCompra(s *memStore, produto string, data time.Time, qtd, custo int64) {
	q := decimal.NewFromInt(qtd)
	c := decimal.NewFromInt(custo)
	s.movimentos = append(s.movimentos, entity.Movimento{
		DataEfetiva:   data,
		Tipo:          entity.MovimentoEntradaCompra,
		Produto:       produto,
		Quantidade:    q,
		CustoUnitario: c,
		ValorTotal:    q.Mul(c),
		Ordem:         int64(len(s.movimentos) + 1),
	})
}

// TestRegistrarInventario_Primeiro reproduz a primeira contagem de sempre:
// contado 8 contra sistema 10 gera diferença −2, ajuste negativo e consumo 0.
func TestRegistrarInventario_Primeiro(t *testing.T) {
	s := newMemStore()
	seedCompra(s, "ProdutoX", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 5)
	uc := novoInventarioUC(s)

	resp, err := uc.Registrar(context.Background(), dto.RegistrarInventarioRequest{
		Data:        "07/03/2025",
		Responsavel: "Ana",
		Itens:       []dto.InventarioItemInput{{Produto: "ProdutoX", Unidade: "un", Contado: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)
	assert.True(t, decimal.NewFromInt(-2).Equal(resp.Itens[0].Diferenca))
	assert.Equal(t, 1, resp.Ajustes)

	// O ajuste foi apendado ao ledger.
	require.Len(t, s.movimentos, 2)
	aj := s.movimentos[1]
	assert.Equal(t, entity.MovimentoAjusteInventarioNeg, aj.Tipo)
	assert.Equal(t, resp.ID, aj.Referencia)
	assert.True(t, decimal.NewFromInt(-2).Equal(aj.Quantidade))

	// E o consumo da primeira contagem é 0.
	consumos := s.consumos[resp.ID]
	require.Len(t, consumos, 1)
	assert.True(t, decimal.Zero.Equal(consumos[0].Quantidade))
}

// TestRegistrarInventario_Segundo reproduz a segunda contagem uma semana
// depois: anterior contado 8, compras de +5 no intervalo, contado atual 3 →
// consumo = (8+5)−3 = 10.
func TestRegistrarInventario_Segundo(t *testing.T) {
	s := newMemStore()
	seedCompra(s, "ProdutoX", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 5)
	uc := novoInventarioUC(s)
	ctx := context.Background()

	_, err := uc.Registrar(ctx, dto.RegistrarInventarioRequest{
		Data:        "07/03/2025",
		Responsavel: "Ana",
		Itens:       []dto.InventarioItemInput{{Produto: "ProdutoX", Unidade: "un", Contado: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)

	seedCompra(s, "ProdutoX", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 5, 6)

	resp, err := uc.Registrar(ctx, dto.RegistrarInventarioRequest{
		Data:        "14/03/2025",
		Responsavel: "Ana",
		Itens:       []dto.InventarioItemInput{{Produto: "ProdutoX", Unidade: "un", Contado: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	inv := s.inventarios[resp.ID]
	require.NotNil(t, inv)
	assert.NotEmpty(t, inv.AnteriorID, "a segunda contagem referencia a anterior")

	consumos := s.consumos[resp.ID]
	require.Len(t, consumos, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(consumos[0].Quantidade),
		"consumo deve ser (8+5)−3 = 10, foi %s", consumos[0].Quantidade)
}

func TestRegistrarInventario_Validacao(t *testing.T) {
	uc := novoInventarioUC(newMemStore())
	ctx := context.Background()

	_, err := uc.Registrar(ctx, dto.RegistrarInventarioRequest{Data: "xx", Responsavel: "Ana",
		Itens: []dto.InventarioItemInput{{Produto: "P", Contado: decimal.NewFromInt(1)}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "data inválida deve rejeitar")

	_, err = uc.Registrar(ctx, dto.RegistrarInventarioRequest{Data: "07/03/2025", Responsavel: "  ",
		Itens: []dto.InventarioItemInput{{Produto: "P", Contado: decimal.NewFromInt(1)}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "responsável em branco deve rejeitar")

	_, err = uc.Registrar(ctx, dto.RegistrarInventarioRequest{Data: "07/03/2025", Responsavel: "Ana"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "contagem sem itens deve rejeitar")
}

// TestRecalcularConsumo_Idempotente verifica que recomputar repetidamente
// produz os mesmos valores e nunca duplica linhas.
func TestRecalcularConsumo_Idempotente(t *testing.T) {
	s := newMemStore()
	seedCompra(s, "ProdutoX", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 5)
	uc := novoInventarioUC(s)
	ctx := context.Background()

	reg, err := uc.Registrar(ctx, dto.RegistrarInventarioRequest{
		Data:        "07/03/2025",
		Responsavel: "Ana",
		Itens:       []dto.InventarioItemInput{{Produto: "ProdutoX", Unidade: "un", Contado: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)

	r1, err := uc.RecalcularConsumo(ctx, dto.RecalcularConsumoRequest{InventarioID: reg.ID})
	require.NoError(t, err)
	primeiros := append([]entity.Consumo{}, s.consumos[reg.ID]...)

	r2, err := uc.RecalcularConsumo(ctx, dto.RecalcularConsumoRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, r1.Inventarios)
	assert.Equal(t, 1, r2.Inventarios)
	require.Len(t, s.consumos[reg.ID], 1, "recomputar não duplica linhas")
	assert.True(t, primeiros[0].Quantidade.Equal(s.consumos[reg.ID][0].Quantidade))
	assert.True(t, primeiros[0].ValorTotal.Equal(s.consumos[reg.ID][0].ValorTotal))
}

func TestRecalcularConsumo_InventarioInexistente(t *testing.T) {
	uc := novoInventarioUC(newMemStore())
	_, err := uc.RecalcularConsumo(context.Background(), dto.RecalcularConsumoRequest{InventarioID: "INV_x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// TestConsultarConsumo verifica a leitura das linhas de consumo gravadas por
// uma contagem.
func TestConsultarConsumo(t *testing.T) {
	s := newMemStore()
	seedCompra(s, "ProdutoX", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 5)
	uc := novoInventarioUC(s)
	ctx := context.Background()

	reg, err := uc.Registrar(ctx, dto.RegistrarInventarioRequest{
		Data:        "07/03/2025",
		Responsavel: "Ana",
		Itens:       []dto.InventarioItemInput{{Produto: "ProdutoX", Unidade: "un", Contado: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)

	resp, err := uc.ConsultarConsumo(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, resp.InventarioID)
	assert.Equal(t, "07/03/2025", resp.Data)
	assert.Equal(t, "Ana", resp.Responsavel)
	require.Len(t, resp.Linhas, 1)
	assert.Equal(t, "ProdutoX", resp.Linhas[0].Produto)
	assert.True(t, decimal.Zero.Equal(resp.Linhas[0].Quantidade),
		"primeira contagem de sempre tem consumo 0")

	_, err = uc.ConsultarConsumo(ctx, "INV_x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
