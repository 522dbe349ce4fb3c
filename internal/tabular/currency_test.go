package tabular_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lucashm/pousada-ops-api/internal/tabular"
)

// TestParseBRL_Formatos cobre a desambiguação de separadores do formato
// monetário brasileiro e a leniência com células malformadas.
func TestParseBRL_Formatos(t *testing.T) {
	cases := []struct {
		nome     string
		entrada  any
		esperado string
	}{
		{"milhar ponto, decimal vírgula", "1.234,56", "1234.56"},
		{"decimal ponto puro", "1234.56", "1234.56"},
		{"símbolo de moeda", "R$ 10,00", "10"},
		{"símbolo BRL", "BRL 99,90", "99.9"},
		{"só vírgula é decimal", "15,5", "15.5"},
		{"inteiro em texto", "200", "200"},
		{"negativo", "-1.000,25", "-1000.25"},
		{"lixo vira zero", "garbage", "0"},
		{"vazio vira zero", "", "0"},
		{"nil vira zero", nil, "0"},
		{"numérico passa direto", 42.5, "42.5"},
		{"inteiro passa direto", 7, "7"},
	}

	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			esperado, _ := decimal.NewFromString(tc.esperado)
			got := tabular.ParseBRL(tc.entrada)
			assert.True(t, esperado.Equal(got),
				"ParseBRL(%v) deve ser %s, foi %s", tc.entrada, esperado, got)
		})
	}
}
