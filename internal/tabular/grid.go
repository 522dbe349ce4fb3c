package tabular

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucashm/pousada-ops-api/internal/domain"
)

// maxHeaderScan limita a busca pela linha de cabeçalho.
const maxHeaderScan = 80

// Grid é a grade bruta de células de uma planilha importada.
// Cada célula pode ser nil, string, float64 ou time.Time.
type Grid [][]any

// Field descreve uma coluna lógica esperada num relatório.
type Field struct {
	Name     string   // nome lógico (data, localizador, valor, ...)
	Synonyms []string // rótulos aceitos no cabeçalho, em ordem de preferência
	Required bool
}

// Schema descreve o formato de um relatório tabular importável.
type Schema struct {
	Fonte  string // origem do relatório, aparece nos erros
	Anchor string // rótulo que identifica a linha de cabeçalho
	Fields []Field
}

// Result é o produto de Parse: cabeçalho localizado e linhas de dados tipáveis.
type Result struct {
	HeaderRow int
	Columns   map[string]int // campo lógico -> índice de coluna (-1 quando ausente)
	Rows      []Row
}

// Row é uma linha de dados com acesso tipado por campo lógico.
type Row struct {
	Index int // índice na grade original
	cells []any
	cols  map[string]int
}

// Parse localiza o cabeçalho pela âncora nas primeiras linhas da grade,
// resolve o índice de cada campo por sinônimo e devolve as linhas de dados.
// Campos obrigatórios ausentes produzem *domain.SchemaMismatchError.
func Parse(grid Grid, schema Schema) (*Result, error) {
	headerRow := findHeaderRow(grid, schema.Anchor)
	if headerRow < 0 {
		return nil, &domain.SchemaMismatchError{
			Fonte:    schema.Fonte,
			Faltando: requiredNames(schema),
			Header:   "",
		}
	}

	header := grid[headerRow]
	cols := make(map[string]int, len(schema.Fields))
	var faltando []string
	for _, f := range schema.Fields {
		idx := findColIndex(header, f.Synonyms)
		cols[f.Name] = idx
		if idx < 0 && f.Required {
			faltando = append(faltando, f.Name)
		}
	}
	if len(faltando) > 0 {
		return nil, &domain.SchemaMismatchError{
			Fonte:    schema.Fonte,
			Faltando: faltando,
			Header:   headerText(header),
		}
	}

	rows := make([]Row, 0, len(grid)-headerRow-1)
	for i := headerRow + 1; i < len(grid); i++ {
		rows = append(rows, Row{Index: i, cells: grid[i], cols: cols})
	}

	return &Result{HeaderRow: headerRow, Columns: cols, Rows: rows}, nil
}

// findHeaderRow varre as primeiras maxHeaderScan linhas à procura de uma célula
// cujo texto normalizado contenha a âncora.
func findHeaderRow(grid Grid, anchor string) int {
	want := NormalizeLabel(anchor)
	limit := len(grid)
	if limit > maxHeaderScan {
		limit = maxHeaderScan
	}
	for i := 0; i < limit; i++ {
		for _, cell := range grid[i] {
			s, ok := cell.(string)
			if !ok {
				continue
			}
			if strings.Contains(NormalizeLabel(s), want) {
				return i
			}
		}
	}
	return -1
}

// findColIndex devolve o índice da primeira célula do cabeçalho que casa com
// algum dos sinônimos (normalizados), ou -1.
func findColIndex(header []any, synonyms []string) int {
	for _, syn := range synonyms {
		want := NormalizeLabel(syn)
		for j, cell := range header {
			s, ok := cell.(string)
			if !ok {
				continue
			}
			if strings.Contains(NormalizeLabel(s), want) {
				return j
			}
		}
	}
	return -1
}

// NormalizeLabel colapsa espaços internos e põe em minúsculas para comparação
// tolerante de rótulos de cabeçalho.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func requiredNames(schema Schema) []string {
	var out []string
	for _, f := range schema.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

func headerText(header []any) string {
	parts := make([]string, 0, len(header))
	for _, cell := range header {
		if s, ok := cell.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, " | ")
}

// Cell devolve o valor bruto do campo, ou nil se a coluna não existe ou a
// linha é curta demais.
func (r Row) Cell(field string) any {
	idx, ok := r.cols[field]
	if !ok || idx < 0 || idx >= len(r.cells) {
		return nil
	}
	return r.cells[idx]
}

// String devolve o campo como texto (trim). Valores não-texto viram "".
func (r Row) String(field string) string {
	switch v := r.Cell(field).(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

// Decimal devolve o campo interpretado como moeda brasileira (lenient: lixo vira 0).
func (r Row) Decimal(field string) decimal.Decimal {
	return ParseBRL(r.Cell(field))
}

// Date devolve o campo coagido a data, ou nil quando irreconhecível.
func (r Row) Date(field string) *time.Time {
	return CoerceDate(r.Cell(field))
}

// Empty informa se a linha não tem nenhuma célula com conteúdo.
func (r Row) Empty() bool {
	for _, cell := range r.cells {
		switch v := cell.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
