package tabular

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL interpreta uma célula como valor monetário em formato brasileiro.
// Valores já numéricos passam direto. Texto: remove símbolo de moeda e tudo
// que não for dígito ou separador, depois desambigua separadores:
//   - vírgula E ponto presentes: ponto é milhar, vírgula é decimal
//   - só vírgula: vírgula é decimal
//   - só ponto ou nenhum: como está
//
// Texto irreconhecível vira 0; células malformadas não abortam a importação.
func ParseBRL(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		return parseBRLText(n)
	default:
		return decimal.Zero
	}
}

func parseBRLText(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	// Mantém apenas dígitos, separadores e sinal.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
