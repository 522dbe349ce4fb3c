package tabular

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Números seriais de planilha plausíveis (épocas entre ~1954 e ~2119).
const (
	serialMin = 20000
	serialMax = 80000
)

// unixEpochSerial é o serial de planilha de 1970-01-01 na época 1899-12-30.
const unixEpochSerial = 25569

var dateTextRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)

// CoerceDate interpreta uma célula como data. Aceita:
//   - time.Time nativo
//   - texto D/M/A[ H:MM[:SS]], ano de 2 dígitos promovido a 2000+AA
//   - número serial de planilha no intervalo (20000, 80000), época 1899-12-30
//
// Qualquer outra coisa devolve nil: data desconhecida é propagada, não é erro.
func CoerceDate(v any) *time.Time {
	switch n := v.(type) {
	case time.Time:
		if n.IsZero() {
			return nil
		}
		t := n
		return &t
	case *time.Time:
		return n
	case float64:
		return serialToDate(n)
	case int:
		return serialToDate(float64(n))
	case int64:
		return serialToDate(float64(n))
	case string:
		return parseDateText(n)
	default:
		return nil
	}
}

func serialToDate(n float64) *time.Time {
	if n <= serialMin || n >= serialMax {
		return nil
	}
	secs := (n - unixEpochSerial) * 86400
	t := time.Unix(int64(secs), 0).UTC()
	return &t
}

func parseDateText(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Texto que é só um número pode ser um serial de planilha.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(f)
	}

	m := dateTextRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) <= 2 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	var hh, mm, ss int
	if m[4] != "" {
		hh, _ = strconv.Atoi(m[4])
		mm, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			ss, _ = strconv.Atoi(m[6])
		}
		if hh > 23 || mm > 59 || ss > 59 {
			return nil
		}
	}

	t := time.Date(year, time.Month(month), day, hh, mm, ss, 0, time.UTC)
	return &t
}

// DateOnly descarta a componente de hora, preservando o fuso UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
