package estoque

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// LinhaContagem é uma linha de entrada de uma contagem física.
type LinhaContagem struct {
	Produto string
	Unidade string
	Contado decimal.Decimal
}

// Reconciliacao é o resultado puro de uma contagem: itens com a diferença
// assinada e os movimentos de ajuste a apendar (um por diferença não nula).
// IDs, referências e timestamps de criação ficam a cargo de quem persiste.
type Reconciliacao struct {
	Itens   []entity.InventarioItem
	Ajustes []entity.Movimento
}

// ReconcilarContagem compara cada linha contada com o estoque derivado do
// ledger na data da contagem. Diferença = contado − sistema; um movimento de
// ajuste (positivo ou negativo conforme o sinal) é emitido apenas quando a
// diferença não é zero, valorado ao custo médio na data da contagem.
func ReconcilarContagem(movs []entity.Movimento, data time.Time, linhas []LinhaContagem) Reconciliacao {
	var rec Reconciliacao
	for _, l := range linhas {
		sistema := StockAsOf(movs, l.Produto, data)
		dif := l.Contado.Sub(sistema)

		item := entity.InventarioItem{
			Produto:        l.Produto,
			Unidade:        l.Unidade,
			EstoqueSistema: sistema,
			Contado:        l.Contado,
			Diferenca:      dif,
			AjusteGerado:   !dif.IsZero(),
		}
		rec.Itens = append(rec.Itens, item)

		if dif.IsZero() {
			continue
		}
		tipo := entity.MovimentoAjusteInventarioPos
		if dif.IsNegative() {
			tipo = entity.MovimentoAjusteInventarioNeg
		}
		custo := AverageCostAsOf(movs, l.Produto, data)
		rec.Ajustes = append(rec.Ajustes, entity.Movimento{
			DataEfetiva:   data,
			Tipo:          tipo,
			Produto:       l.Produto,
			Quantidade:    dif,
			CustoUnitario: custo,
			ValorTotal:    dif.Mul(custo),
		})
	}
	return rec
}

// ContagemAnterior resume a contagem imediatamente precedente para o cálculo
// de consumo. Nil representa a primeira contagem de sempre.
type ContagemAnterior struct {
	Data    time.Time
	Contado map[string]decimal.Decimal // produto -> quantidade contada
}

// ConsumoLinha é uma linha de consumo derivada, sem identidade persistente.
type ConsumoLinha struct {
	Produto    string
	Quantidade decimal.Decimal
	CustoMedio decimal.Decimal
	ValorTotal decimal.Decimal
}

// ConsumoDaContagem deriva o consumo por produto entre a contagem anterior e a
// atual: (contado anterior + compras em (data anterior, data atual]) − contado
// atual. Produto ausente da contagem anterior conta como 0 anterior. Na
// primeira contagem de sempre o consumo é 0 por definição. Valorado ao custo
// médio na data da contagem atual.
func ConsumoDaContagem(movs []entity.Movimento, anterior *ContagemAnterior, data time.Time, itens []entity.InventarioItem) []ConsumoLinha {
	out := make([]ConsumoLinha, 0, len(itens))
	for _, item := range itens {
		qtd := decimal.Zero
		if anterior != nil {
			prev := anterior.Contado[item.Produto]
			compras := ComprasNoIntervalo(movs, item.Produto, anterior.Data, data)
			qtd = prev.Add(compras).Sub(item.Contado)
		}
		custo := AverageCostAsOf(movs, item.Produto, data)
		out = append(out, ConsumoLinha{
			Produto:    item.Produto,
			Quantidade: qtd,
			CustoMedio: custo,
			ValorTotal: qtd.Mul(custo),
		})
	}
	return out
}
