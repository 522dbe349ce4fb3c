package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nota representa o cabeçalho de uma nota de compra.
// Chave de unicidade de negócio: (Data, Fornecedor, Numero).
type Nota struct {
	ID             string // formato <yyyymmddHHmmss>_<numero>
	Data           time.Time
	Fornecedor     string
	Numero         string // número do documento fiscal
	FormaPagamento string
	Total          decimal.Decimal // total declarado pelo operador
	Observacoes    string
	CreatedAt      time.Time
}

// NotaItem é uma linha de uma nota de compra. Total é derivado (Quantidade × PrecoUnitario).
type NotaItem struct {
	ID            string
	NotaID        string
	Produto       string // nome do produto
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
	Total         decimal.Decimal
}
