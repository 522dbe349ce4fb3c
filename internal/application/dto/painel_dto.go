package dto

import "github.com/shopspring/decimal"

// PainelGastosRequest filtros do painel de gastos; campos vazios não filtram.
type PainelGastosRequest struct {
	DataInicio string `query:"data_inicio"` // D/M/A
	DataFim    string `query:"data_fim"`
	Fornecedor string `query:"fornecedor"`
	Categoria  string `query:"categoria"`
	FormaPgto  string `query:"forma_pagamento"`
	Numero     string `query:"numero"`
}

// GastoLinhaResponse linha do painel (join nota × item).
type GastoLinhaResponse struct {
	Data           string          `json:"data"`
	Fornecedor     string          `json:"fornecedor"`
	Numero         string          `json:"numero"`
	FormaPagamento string          `json:"forma_pagamento"`
	Produto        string          `json:"produto"`
	Categoria      string          `json:"categoria"`
	Quantidade     decimal.Decimal `json:"quantidade"`
	PrecoUnitario  decimal.Decimal `json:"preco_unitario"`
	Total          decimal.Decimal `json:"total"`
}

// TotalPorChave agregado com chave ordenável (mês, fornecedor ou categoria).
type TotalPorChave struct {
	Chave string          `json:"chave"`
	Total decimal.Decimal `json:"total"`
}

// PainelGastosResponse listagem filtrada mais os agregados.
type PainelGastosResponse struct {
	Linhas        []GastoLinhaResponse `json:"linhas"`
	Total         decimal.Decimal      `json:"total"`
	PorMes        []TotalPorChave      `json:"por_mes"`
	PorFornecedor []TotalPorChave      `json:"por_fornecedor"`
	PorCategoria  []TotalPorChave      `json:"por_categoria"`
}
