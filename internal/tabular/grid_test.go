package tabular_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/tabular"
)

func esquemaReservas() tabular.Schema {
	return tabular.Schema{
		Fonte:  "Omnibees",
		Anchor: "Localizador",
		Fields: []tabular.Field{
			{Name: "localizador", Synonyms: []string{"Localizador", "Nº Reserva"}, Required: true},
			{Name: "checkin", Synonyms: []string{"Check-in", "Chegada"}, Required: true},
			{Name: "valor", Synonyms: []string{"Valor Total", "Valor"}, Required: false},
		},
	}
}

// TestParse_CabecalhoForaDaPrimeiraLinha verifica que o cabeçalho é localizado
// mesmo precedido de linhas de título e em branco, como nos exports reais.
func TestParse_CabecalhoForaDaPrimeiraLinha(t *testing.T) {
	grid := tabular.Grid{
		{"Relatório de Reservas"},
		{},
		{"Localizador", "Check-in", "Valor Total"},
		{"12345", "10/03/2025", "1.234,56"},
		{"67890", "11/03/2025", "R$ 10,00"},
	}

	res, err := tabular.Parse(grid, esquemaReservas())
	require.NoError(t, err, "Parse deve localizar o cabeçalho na terceira linha")
	assert.Equal(t, 2, res.HeaderRow)
	require.Len(t, res.Rows, 2)

	row := res.Rows[0]
	assert.Equal(t, "12345", row.String("localizador"))
	assert.True(t, decimal.NewFromFloat(1234.56).Equal(row.Decimal("valor")),
		"valor deve ser interpretado em formato brasileiro")
	d := row.Date("checkin")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *d)
}

// TestParse_SinonimosResolvemColunas verifica que o segundo sinônimo resolve a
// coluna quando o primeiro rótulo não aparece.
func TestParse_SinonimosResolvemColunas(t *testing.T) {
	grid := tabular.Grid{
		{"Nº Reserva", "Chegada"},
		{"555", "01/01/2025"},
	}

	res, err := tabular.Parse(grid, esquemaReservas())
	require.NoError(t, err)
	assert.Equal(t, "555", res.Rows[0].String("localizador"))
	assert.NotNil(t, res.Rows[0].Date("checkin"))
}

// TestParse_ColunaObrigatoriaAusente verifica que a falta de uma coluna
// obrigatória produz SchemaMismatchError nomeando o campo e o cabeçalho lido.
func TestParse_ColunaObrigatoriaAusente(t *testing.T) {
	grid := tabular.Grid{
		{"Localizador", "Hóspede"},
		{"12345", "Fulano"},
	}

	_, err := tabular.Parse(grid, esquemaReservas())
	require.Error(t, err)

	var mismatch *domain.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"checkin"}, mismatch.Faltando)
	assert.Contains(t, mismatch.Header, "Localizador")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput),
		"SchemaMismatchError deve mapear para entrada inválida")
}

// TestParse_SemCabecalho verifica que uma grade sem a âncora falha listando
// todos os campos obrigatórios.
func TestParse_SemCabecalho(t *testing.T) {
	grid := tabular.Grid{
		{"qualquer", "coisa"},
		{1.0, 2.0},
	}

	_, err := tabular.Parse(grid, esquemaReservas())
	var mismatch *domain.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.ElementsMatch(t, []string{"localizador", "checkin"}, mismatch.Faltando)
	assert.Empty(t, mismatch.Header)
}

// TestRow_Empty verifica a detecção de linha vazia usada para parar leituras.
func TestRow_Empty(t *testing.T) {
	grid := tabular.Grid{
		{"Localizador", "Check-in"},
		{"", "  "},
		{"111", "02/02/2025"},
	}

	res, err := tabular.Parse(grid, esquemaReservas())
	require.NoError(t, err)
	assert.True(t, res.Rows[0].Empty())
	assert.False(t, res.Rows[1].Empty())
}
