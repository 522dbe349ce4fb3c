package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventario é o cabeçalho de uma contagem física de estoque.
// AnteriorID aponta para a contagem cronologicamente anterior (vazio na primeira).
type Inventario struct {
	ID          string // formato INV_<yyyymmdd>_<stamp>
	Data        time.Time
	Responsavel string
	Observacoes string
	AnteriorID  string
	CreatedAt   time.Time
}

// InventarioItem é uma linha de contagem: estoque esperado pelo sistema na data
// da contagem contra o contado fisicamente. Diferenca = Contado − EstoqueSistema.
type InventarioItem struct {
	ID             string
	InventarioID   string
	Produto        string
	Unidade        string
	EstoqueSistema decimal.Decimal
	Contado        decimal.Decimal
	Diferenca      decimal.Decimal
	AjusteGerado   bool // true quando a diferença gerou movimento de ajuste
}

// Consumo é um registro derivado, totalmente recomputável, por (inventário, produto):
// consumo = (contado anterior + compras em (data anterior, data atual]) − contado atual.
// Na primeira contagem o consumo é 0 por definição.
type Consumo struct {
	ID           string
	InventarioID string
	Produto      string
	Data         time.Time // data da contagem atual
	Quantidade   decimal.Decimal
	CustoMedio   decimal.Decimal // custo médio na data da contagem
	ValorTotal   decimal.Decimal
}
