package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item do estoque da pousada.
// Movimentos e itens de nota referenciam o produto pelo nome exato (sem trim
// adicional no match, case-sensitive); não há chave surrogate obrigatória.
type Produto struct {
	ID            string
	Nome          string
	Categoria     string
	Unidade       string          // un, pct, cx, kg, g, l, ml
	EstoqueMinimo decimal.Decimal // limiar para o relatório BAIXO/OK
	Ativo         bool            // apenas produtos ativos entram em novas transações
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status de estoque frente ao mínimo, usado no relatório de estoque atual.
const (
	EstoqueStatusBaixo = "BAIXO"
	EstoqueStatusOK    = "OK"
)
