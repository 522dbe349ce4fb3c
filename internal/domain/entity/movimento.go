package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento do ledger de estoque.
const (
	MovimentoEntradaCompra       = "ENTRADA_COMPRA"
	MovimentoAjusteInventarioPos = "AJUSTE_INVENTARIO_POS"
	MovimentoAjusteInventarioNeg = "AJUSTE_INVENTARIO_NEG"
)

// Movimento é uma entrada imutável do ledger, única fonte de verdade do estoque.
// Quantidade é assinada: entradas e ajustes positivos > 0, ajustes negativos < 0.
// Estoque de um produto na data D = soma das quantidades com DataEfetiva ≤ D.
type Movimento struct {
	ID            string
	CriadoEm      time.Time // instante de criação do registro
	DataEfetiva   time.Time // data contábil do movimento
	Tipo          string
	Referencia    string // id da nota ou do inventário que o originou
	Produto       string // nome do produto
	Quantidade    decimal.Decimal
	CustoUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
	Observacao    string
	Ordem         int64 // sequência de inserção, desempate no custo médio
}
