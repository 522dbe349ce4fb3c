package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rótulos de pagamento dos blocos de auditoria.
const (
	PagamentoPago    = "Pago"
	PagamentoNaoPago = "Não Pago"
)

// Tipos de importação registrados no log de auditoria.
const (
	ImportacaoAudit   = "AUDIT"
	ImportacaoNiara   = "NIARA"
	ImportacaoBee2Pay = "BEE2PAY"
)

// AuditoriaDia representa a planilha de auditoria de um dia. O rótulo segue
// dd/MM/yyyy, com sufixo " (n)" quando há mais de uma auditoria no mesmo dia.
type AuditoriaDia struct {
	ID        string
	Data      time.Time
	Rotulo    string
	CreatedAt time.Time
}

// AuditoriaBloco é a unidade lógica de uma reserva dentro de um dia de auditoria.
// Os campos vindos do sistema primário são imutáveis após a criação; fontes
// secundárias só tocam Pagamento e Observacoes.
type AuditoriaBloco struct {
	ID          string
	DiaID       string
	Sistema     string // fonte do bloco; só o primário entra no índice de match
	Localizador string
	Titular     string
	Status      string
	Origem      string
	CheckIn     *time.Time
	CheckOut    *time.Time
	Quartos     int
	Tarifarios  string
	Aptos       string
	Total       decimal.Decimal

	// Área mutável, alvo das fontes secundárias.
	Pagamento   string
	Observacoes string
	UpdatedAt   time.Time
}

// RegistroImportacao é uma linha do log de importações de auditoria.
type RegistroImportacao struct {
	ID             string
	Tipo           string // AUDIT, NIARA, BEE2PAY
	Arquivo        string
	Correspondidos int
	NaoEncontrados []string
	Duracao        time.Duration
	CreatedAt      time.Time
}

// GastoLinha é uma linha do painel de gastos (join nota × item).
type GastoLinha struct {
	NotaID         string
	Data           time.Time
	Fornecedor     string
	Numero         string
	FormaPagamento string
	Produto        string
	Categoria      string
	Quantidade     decimal.Decimal
	PrecoUnitario  decimal.Decimal
	Total          decimal.Decimal
}
