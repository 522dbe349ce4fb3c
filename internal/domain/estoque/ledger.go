package estoque

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// Serviços de domínio puros sobre o ledger de movimentos. Nenhum estado,
// nenhum cache: cada chamada re-deriva o resultado do histórico imutável.

// StockAsOf devolve o estoque de um produto na data dada: soma das
// quantidades assinadas de todos os movimentos com data efetiva ≤ data.
// Sem movimentos, o estoque é 0.
func StockAsOf(movs []entity.Movimento, produto string, data time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		if m.Produto != produto || m.DataEfetiva.After(data) {
			continue
		}
		total = total.Add(m.Quantidade)
	}
	return total
}

// AverageCostAsOf devolve o custo médio ponderado por quantidade das entradas
// de compra do produto até a data. Quantidade total zero com entradas
// existentes cai para o custo da entrada mais recente (empate na data resolve
// pela ordem de inserção posterior). Sem entradas, devolve 0.
func AverageCostAsOf(movs []entity.Movimento, produto string, data time.Time) decimal.Decimal {
	totalQtd := decimal.Zero
	totalValor := decimal.Zero
	var ultima *entity.Movimento
	for i := range movs {
		m := &movs[i]
		if m.Tipo != entity.MovimentoEntradaCompra || m.Produto != produto || m.DataEfetiva.After(data) {
			continue
		}
		totalQtd = totalQtd.Add(m.Quantidade)
		totalValor = totalValor.Add(m.Quantidade.Mul(m.CustoUnitario))
		if ultima == nil || !m.DataEfetiva.Before(ultima.DataEfetiva) {
			ultima = m
		}
	}
	if ultima == nil {
		return decimal.Zero
	}
	if totalQtd.IsZero() {
		return ultima.CustoUnitario
	}
	return totalValor.Div(totalQtd)
}

// ComprasNoIntervalo soma as quantidades de entrada de compra do produto no
// intervalo aberto-fechado (depois, ate].
func ComprasNoIntervalo(movs []entity.Movimento, produto string, depois, ate time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		if m.Tipo != entity.MovimentoEntradaCompra || m.Produto != produto {
			continue
		}
		if !m.DataEfetiva.After(depois) || m.DataEfetiva.After(ate) {
			continue
		}
		total = total.Add(m.Quantidade)
	}
	return total
}

// StockMapAsOf calcula o estoque de todos os produtos presentes no ledger numa
// única passada.
func StockMapAsOf(movs []entity.Movimento, data time.Time) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, m := range movs {
		if m.DataEfetiva.After(data) {
			continue
		}
		out[m.Produto] = out[m.Produto].Add(m.Quantidade)
	}
	return out
}

// AvgCostMapAsOf calcula o custo médio de todos os produtos com entradas até a
// data, com a mesma regra de fallback de AverageCostAsOf.
func AvgCostMapAsOf(movs []entity.Movimento, data time.Time) map[string]decimal.Decimal {
	type acc struct {
		qtd    decimal.Decimal
		valor  decimal.Decimal
		ultima *entity.Movimento
	}
	porProduto := make(map[string]*acc)
	for i := range movs {
		m := &movs[i]
		if m.Tipo != entity.MovimentoEntradaCompra || m.DataEfetiva.After(data) {
			continue
		}
		a := porProduto[m.Produto]
		if a == nil {
			a = &acc{}
			porProduto[m.Produto] = a
		}
		a.qtd = a.qtd.Add(m.Quantidade)
		a.valor = a.valor.Add(m.Quantidade.Mul(m.CustoUnitario))
		if a.ultima == nil || !m.DataEfetiva.Before(a.ultima.DataEfetiva) {
			a.ultima = m
		}
	}

	out := make(map[string]decimal.Decimal, len(porProduto))
	for produto, a := range porProduto {
		if a.qtd.IsZero() {
			out[produto] = a.ultima.CustoUnitario
			continue
		}
		out[produto] = a.valor.Div(a.qtd)
	}
	return out
}
