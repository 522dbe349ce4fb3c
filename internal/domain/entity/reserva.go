package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flags derivados de uma reserva agrupada.
const (
	FlagTarifasMultiplas = "TARIFAS_MULTIPLAS"
	FlagAptosMultiplos   = "APTOS_MULTIPLOS"
)

// LinhaReserva é uma linha bruta do relatório do motor de reservas, ainda não
// agrupada. Várias linhas podem partilhar o mesmo localizador (multi-quarto).
type LinhaReserva struct {
	Localizador string
	Status      string // texto livre do relatório
	DataCriacao *time.Time
	Origem      string // texto livre do relatório
	CheckIn     *time.Time
	CheckOut    *time.Time
	Hospedes    string // lista separada por ";", primeiro segmento = titular
	Tarifario   string
	Apto        string
	Valor       decimal.Decimal
}

// Reserva é o agregado normalizado de uma ou mais linhas com o mesmo localizador.
// Campos escalares (status, origem, datas, titular) vêm da primeira linha do grupo.
type Reserva struct {
	Localizador string
	Status      string // confirmada, cancelada, alterada
	DataCriacao *time.Time
	Origem      string
	CheckIn     *time.Time
	CheckOut    *time.Time
	Titular     string
	Quartos     int    // número de linhas contribuintes
	Tarifarios  string // distintos, unidos por " + "
	Aptos       string // distintos, unidos por " + "
	Total       decimal.Decimal
	Flags       []string // TARIFAS_MULTIPLAS, APTOS_MULTIPLOS
}

// RegistroPagamento é um registro normalizado de uma fonte secundária de
// pagamento (gateway ou processador de canal) já mapeado para localizador.
type RegistroPagamento struct {
	Localizador string // já normalizado (truncado no primeiro "/")
	Pago        bool
	Metodo      string
	Valor       decimal.Decimal
	Status      string // texto original, para diagnóstico
}
