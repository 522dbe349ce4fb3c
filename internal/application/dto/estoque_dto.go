package dto

import "github.com/shopspring/decimal"

// CriarProdutoRequest dados para cadastro de produto.
type CriarProdutoRequest struct {
	Nome          string          `json:"nome"`
	Categoria     string          `json:"categoria"`
	Unidade       string          `json:"unidade"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
}

// ProdutoResponse produto para listagens.
type ProdutoResponse struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	Categoria     string          `json:"categoria"`
	Unidade       string          `json:"unidade"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	Ativo         bool            `json:"ativo"`
}

// EstoqueAtualItem linha do relatório de estoque atual contra o mínimo.
type EstoqueAtualItem struct {
	Produto       string          `json:"produto"`
	Categoria     string          `json:"categoria"`
	Unidade       string          `json:"unidade"`
	Estoque       decimal.Decimal `json:"estoque"`
	EstoqueMinimo decimal.Decimal `json:"estoque_minimo"`
	CustoMedio    decimal.Decimal `json:"custo_medio"`
	Status        string          `json:"status"` // BAIXO | OK
}

// RegistrarNotaRequest cabeçalho e itens de uma nota de compra.
type RegistrarNotaRequest struct {
	Data           string          `json:"data"` // D/M/A
	Fornecedor     string          `json:"fornecedor"`
	Numero         string          `json:"numero"`
	FormaPagamento string          `json:"forma_pagamento"`
	Total          decimal.Decimal `json:"total"`
	Observacoes    string          `json:"observacoes"`
	Itens          []NotaItemInput `json:"itens"`
}

// NotaItemInput uma linha de compra.
type NotaItemInput struct {
	Produto       string          `json:"produto"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
}

// RegistrarNotaResponse identificadores gerados.
type RegistrarNotaResponse struct {
	ID         string `json:"id"`
	Movimentos int    `json:"movimentos"`
}

// RegistrarInventarioRequest uma sessão de contagem física.
type RegistrarInventarioRequest struct {
	Data        string                `json:"data"` // D/M/A
	Responsavel string                `json:"responsavel"`
	Observacoes string                `json:"observacoes"`
	Itens       []InventarioItemInput `json:"itens"`
}

// InventarioItemInput uma linha contada.
type InventarioItemInput struct {
	Produto string          `json:"produto"`
	Unidade string          `json:"unidade"`
	Contado decimal.Decimal `json:"contado"`
}

// InventarioItemResponse linha de contagem com a diferença apurada.
type InventarioItemResponse struct {
	Produto        string          `json:"produto"`
	Unidade        string          `json:"unidade"`
	EstoqueSistema decimal.Decimal `json:"estoque_sistema"`
	Contado        decimal.Decimal `json:"contado"`
	Diferenca      decimal.Decimal `json:"diferenca"`
	AjusteGerado   bool            `json:"ajuste_gerado"`
}

// RegistrarInventarioResponse resultado da contagem.
type RegistrarInventarioResponse struct {
	ID      string                   `json:"id"`
	Itens   []InventarioItemResponse `json:"itens"`
	Ajustes int                      `json:"ajustes"`
}

// MovimentoResponse linha do ledger de um produto.
type MovimentoResponse struct {
	Data          string          `json:"data"` // data contábil, dd/MM/yyyy
	Tipo          string          `json:"tipo"`
	Referencia    string          `json:"referencia"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	CustoUnitario decimal.Decimal `json:"custo_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Observacao    string          `json:"observacao,omitempty"`
}

// ConsumoLinhaResponse consumo apurado de um produto numa contagem.
type ConsumoLinhaResponse struct {
	Produto    string          `json:"produto"`
	Quantidade decimal.Decimal `json:"quantidade"`
	CustoMedio decimal.Decimal `json:"custo_medio"`
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// ConsumoInventarioResponse as linhas de consumo derivadas de uma contagem.
type ConsumoInventarioResponse struct {
	InventarioID string                 `json:"inventario_id"`
	Data         string                 `json:"data"`
	Responsavel  string                 `json:"responsavel"`
	Linhas       []ConsumoLinhaResponse `json:"linhas"`
}

// RecalcularConsumoRequest alvo da recomputação; vazio recalcula tudo.
type RecalcularConsumoRequest struct {
	InventarioID string `json:"inventario_id"`
}

// RecalcularConsumoResponse contagens recomputadas.
type RecalcularConsumoResponse struct {
	Inventarios int `json:"inventarios"`
	Linhas      int `json:"linhas"`
}
