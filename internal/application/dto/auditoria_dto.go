package dto

import "github.com/shopspring/decimal"

// ImportarGridRequest corpo das importações de auditoria: a grade bruta de
// células já decodificada do arquivo exportado (a leitura do arquivo é camada
// de plataforma). Arquivo e metadados alimentam a deduplicação. Usuario vem
// do token autenticado, não do corpo.
type ImportarGridRequest struct {
	Arquivo    string  `json:"arquivo"`
	Checksum   string  `json:"checksum"`
	Tamanho    int64   `json:"tamanho"`
	Modificado int64   `json:"modificado"` // unix seconds, 0 quando indisponível
	Grid       [][]any `json:"grid"`
	Usuario    string  `json:"-"`
}

// ImportarOmnibeesResponse resultado da importação primária.
type ImportarOmnibeesResponse struct {
	DiaID    string `json:"dia_id"`
	Rotulo   string `json:"rotulo"`
	Reservas int    `json:"reservas"`
}

// ImportarPagamentosResponse resultado de uma importação secundária.
type ImportarPagamentosResponse struct {
	Rotulo          string   `json:"rotulo"`
	Correspondidos  int      `json:"correspondidos"`
	Ignorados       int      `json:"ignorados"`
	MarcadosNaoPago int      `json:"marcados_nao_pago,omitempty"`
	NaoEncontrados  []string `json:"nao_encontrados"`
}

// AuditoriaBlocoResponse bloco de um dia de auditoria.
type AuditoriaBlocoResponse struct {
	Localizador string          `json:"localizador"`
	Titular     string          `json:"titular"`
	Status      string          `json:"status"`
	Origem      string          `json:"origem"`
	CheckIn     string          `json:"check_in,omitempty"`
	CheckOut    string          `json:"check_out,omitempty"`
	Quartos     int             `json:"quartos"`
	Tarifarios  string          `json:"tarifarios"`
	Aptos       string          `json:"aptos"`
	Total       decimal.Decimal `json:"total"`
	Pagamento   string          `json:"pagamento,omitempty"`
	Observacoes string          `json:"observacoes,omitempty"`
}

// AuditoriaDiaResponse um dia de auditoria com os seus blocos.
type AuditoriaDiaResponse struct {
	Rotulo string                   `json:"rotulo"`
	Data   string                   `json:"data"`
	Blocos []AuditoriaBlocoResponse `json:"blocos"`
}
