package estoque_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/estoque"
)

// TestReconcilarContagem_PrimeiraContagem reproduz a primeira contagem de
// sempre: contado 8 contra sistema 10 gera diferença −2, um ajuste negativo de
// −2 e consumo 0.
func TestReconcilarContagem_PrimeiraContagem(t *testing.T) {
	movs := []entity.Movimento{entrada("ProdutoX", 1, 10, 5, 1)}

	rec := estoque.ReconcilarContagem(movs, dia(7), []estoque.LinhaContagem{
		{Produto: "ProdutoX", Unidade: "un", Contado: decimal.NewFromInt(8)},
	})

	require.Len(t, rec.Itens, 1)
	item := rec.Itens[0]
	assert.True(t, decimal.NewFromInt(10).Equal(item.EstoqueSistema))
	assert.True(t, decimal.NewFromInt(-2).Equal(item.Diferenca))
	assert.True(t, item.AjusteGerado)

	require.Len(t, rec.Ajustes, 1)
	aj := rec.Ajustes[0]
	assert.Equal(t, entity.MovimentoAjusteInventarioNeg, aj.Tipo)
	assert.True(t, decimal.NewFromInt(-2).Equal(aj.Quantidade))
	assert.True(t, decimal.NewFromInt(5).Equal(aj.CustoUnitario),
		"ajuste valorado ao custo médio na data da contagem")
	assert.True(t, decimal.NewFromInt(-10).Equal(aj.ValorTotal))

	consumo := estoque.ConsumoDaContagem(movs, nil, dia(7), rec.Itens)
	require.Len(t, consumo, 1)
	assert.True(t, decimal.Zero.Equal(consumo[0].Quantidade),
		"primeira contagem de sempre tem consumo 0 por definição")
}

// TestConsumoDaContagem_SegundaContagem reproduz a segunda contagem uma semana
// depois: anterior contado 8, compras de +5 no intervalo, contado atual 3 →
// consumo = (8+5)−3 = 10.
func TestConsumoDaContagem_SegundaContagem(t *testing.T) {
	movs := []entity.Movimento{
		entrada("ProdutoX", 1, 10, 5, 1),
		ajuste("ProdutoX", 7, -2),
		entrada("ProdutoX", 10, 5, 6, 2),
	}
	anterior := &estoque.ContagemAnterior{
		Data:    dia(7),
		Contado: map[string]decimal.Decimal{"ProdutoX": decimal.NewFromInt(8)},
	}
	itens := []entity.InventarioItem{
		{Produto: "ProdutoX", Contado: decimal.NewFromInt(3)},
	}

	consumo := estoque.ConsumoDaContagem(movs, anterior, dia(14), itens)
	require.Len(t, consumo, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(consumo[0].Quantidade),
		"consumo deve ser (8+5)−3 = 10, foi %s", consumo[0].Quantidade)
	assert.True(t, consumo[0].ValorTotal.Equal(consumo[0].Quantidade.Mul(consumo[0].CustoMedio)))
}

// TestConsumoDaContagem_ProdutoNovo verifica que produto contado agora mas
// ausente da contagem anterior conta como 0 anterior, não como desconhecido.
func TestConsumoDaContagem_ProdutoNovo(t *testing.T) {
	movs := []entity.Movimento{entrada("Leite", 10, 6, 3, 1)}
	anterior := &estoque.ContagemAnterior{
		Data:    dia(7),
		Contado: map[string]decimal.Decimal{"Cafe": decimal.NewFromInt(4)},
	}
	itens := []entity.InventarioItem{
		{Produto: "Leite", Contado: decimal.NewFromInt(2)},
	}

	consumo := estoque.ConsumoDaContagem(movs, anterior, dia(14), itens)
	require.Len(t, consumo, 1)
	// (0 + 6) − 2 = 4
	assert.True(t, decimal.NewFromInt(4).Equal(consumo[0].Quantidade))
}

// TestReconcilarContagem_InvarianteDiferenca verifica que a soma das
// diferenças dos itens é igual à soma das quantidades dos ajustes emitidos.
func TestReconcilarContagem_InvarianteDiferenca(t *testing.T) {
	movs := []entity.Movimento{
		entrada("Cafe", 1, 10, 5, 1),
		entrada("Leite", 1, 6, 3, 2),
		entrada("Acucar", 1, 4, 2, 3),
	}
	rec := estoque.ReconcilarContagem(movs, dia(7), []estoque.LinhaContagem{
		{Produto: "Cafe", Contado: decimal.NewFromInt(8)},   // -2
		{Produto: "Leite", Contado: decimal.NewFromInt(9)},  // +3
		{Produto: "Acucar", Contado: decimal.NewFromInt(4)}, // 0, sem ajuste
	})

	somaDif := decimal.Zero
	for _, item := range rec.Itens {
		somaDif = somaDif.Add(item.Diferenca)
	}
	somaAjustes := decimal.Zero
	for _, aj := range rec.Ajustes {
		somaAjustes = somaAjustes.Add(aj.Quantidade)
	}

	assert.True(t, somaDif.Equal(somaAjustes),
		"Σ(contado − sistema) deve igualar Σ quantidades dos ajustes")
	assert.Len(t, rec.Ajustes, 2, "diferença zero não gera ajuste")
	assert.False(t, rec.Itens[2].AjusteGerado)
}

// TestConsumoDaContagem_Idempotente verifica que recomputar duas vezes com os
// mesmos dados produz linhas idênticas.
func TestConsumoDaContagem_Idempotente(t *testing.T) {
	movs := []entity.Movimento{
		entrada("Cafe", 1, 10, 5, 1),
		entrada("Cafe", 10, 5, 6, 2),
	}
	anterior := &estoque.ContagemAnterior{
		Data:    dia(7),
		Contado: map[string]decimal.Decimal{"Cafe": decimal.NewFromInt(8)},
	}
	itens := []entity.InventarioItem{{Produto: "Cafe", Contado: decimal.NewFromInt(3)}}

	a := estoque.ConsumoDaContagem(movs, anterior, dia(14), itens)
	b := estoque.ConsumoDaContagem(movs, anterior, dia(14), itens)
	assert.Equal(t, a, b, "recomputação do consumo deve ser determinista")
}
