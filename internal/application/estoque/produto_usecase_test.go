package estoque_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	appestoque "github.com/lucashm/pousada-ops-api/internal/application/estoque"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

func novoProdutoUC(s *memStore) *appestoque.ProdutoUseCase {
	return appestoque.NewProdutoUseCase(produtoRepo{s}, movimentoRepo{s},
		[]string{"Alimentos", "Limpeza"}, []string{"un", "kg"})
}

func TestCriarProduto(t *testing.T) {
	s := newMemStore()
	uc := novoProdutoUC(s)

	resp, err := uc.Criar(dto.CriarProdutoRequest{
		Nome:          "Arroz",
		Categoria:     "Alimentos",
		Unidade:       "kg",
		EstoqueMinimo: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.Ativo, "produto novo nasce ativo")

	_, err = uc.Criar(dto.CriarProdutoRequest{Nome: "Arroz", Categoria: "Alimentos", Unidade: "kg"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "nome repetido deve rejeitar")
}

func TestCriarProduto_Validacao(t *testing.T) {
	uc := novoProdutoUC(newMemStore())

	casos := []struct {
		nome string
		in   dto.CriarProdutoRequest
	}{
		{"sem nome", dto.CriarProdutoRequest{Categoria: "Alimentos", Unidade: "un"}},
		{"categoria fora do vocabulário", dto.CriarProdutoRequest{Nome: "X", Categoria: "Ferramentas", Unidade: "un"}},
		{"unidade fora do vocabulário", dto.CriarProdutoRequest{Nome: "X", Categoria: "Alimentos", Unidade: "cx"}},
		{"mínimo negativo", dto.CriarProdutoRequest{Nome: "X", Categoria: "Alimentos", Unidade: "un", EstoqueMinimo: decimal.NewFromInt(-1)}},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			_, err := uc.Criar(c.in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestCriarProduto_SemVocabulario(t *testing.T) {
	// Listas vazias na configuração desativam a validação de vocabulário.
	uc := appestoque.NewProdutoUseCase(produtoRepo{newMemStore()}, movimentoRepo{newMemStore()}, nil, nil)
	_, err := uc.Criar(dto.CriarProdutoRequest{Nome: "X", Categoria: "Qualquer", Unidade: "cx"})
	assert.NoError(t, err)
}

func TestRelatorioEstoque(t *testing.T) {
	s := newMemStore()
	uc := novoProdutoUC(s)

	_, err := uc.Criar(dto.CriarProdutoRequest{Nome: "Arroz", Categoria: "Alimentos", Unidade: "kg",
		EstoqueMinimo: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = uc.Criar(dto.CriarProdutoRequest{Nome: "Sabão", Categoria: "Limpeza", Unidade: "un",
		EstoqueMinimo: decimal.NewFromInt(2)})
	require.NoError(t, err)

	ontem := time.Now().AddDate(0, 0, -1)
	seedCompra(s, "Arroz", ontem, 10, 4)
	seedCompra(s, "Sabão", ontem, 1, 3)

	itens, err := uc.RelatorioEstoque()
	require.NoError(t, err)
	require.Len(t, itens, 2)

	porProduto := map[string]dto.EstoqueAtualItem{}
	for _, item := range itens {
		porProduto[item.Produto] = item
	}

	arroz := porProduto["Arroz"]
	assert.True(t, decimal.NewFromInt(10).Equal(arroz.Estoque))
	assert.True(t, decimal.NewFromInt(4).Equal(arroz.CustoMedio))
	assert.Equal(t, entity.EstoqueStatusOK, arroz.Status)

	sabao := porProduto["Sabão"]
	assert.True(t, decimal.NewFromInt(1).Equal(sabao.Estoque))
	assert.Equal(t, entity.EstoqueStatusBaixo, sabao.Status, "abaixo do mínimo deve sinalizar BAIXO")
}

// TestMovimentosDoProduto verifica a consulta do ledger por produto, na ordem
// de inserção e sem misturar produtos.
func TestMovimentosDoProduto(t *testing.T) {
	s := newMemStore()
	seedCompra(s, "Arroz", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 4)
	seedCompra(s, "Sabão", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), 2, 3)
	seedCompra(s, "Arroz", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), 5, 6)
	uc := novoProdutoUC(s)

	movs, err := uc.Movimentos("Arroz")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "01/03/2025", movs[0].Data)
	assert.Equal(t, "05/03/2025", movs[1].Data)
	assert.Equal(t, entity.MovimentoEntradaCompra, movs[0].Tipo)
	assert.True(t, decimal.NewFromInt(5).Equal(movs[1].Quantidade))

	vazio, err := uc.Movimentos("Inexistente")
	require.NoError(t, err)
	assert.Empty(t, vazio, "produto sem histórico devolve lista vazia, não erro")

	_, err = uc.Movimentos("  ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
