package auditoria

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// maxSufixoRotulo limita a desambiguação " (n)" antes do fallback por hora.
const maxSufixoRotulo = 20

// RotuloParaDia gera o rótulo de um novo dia de auditoria: dd/MM/yyyy, com
// sufixo " (n)" quando o dia já existe, e fallback com a hora quando os
// sufixos esgotam.
func RotuloParaDia(data time.Time, existentes []string, agora time.Time) string {
	base := data.Format("02/01/2006")
	if !contemRotulo(existentes, base) {
		return base
	}
	for n := 2; n <= maxSufixoRotulo; n++ {
		cand := fmt.Sprintf("%s (%d)", base, n)
		if !contemRotulo(existentes, cand) {
			return cand
		}
	}
	return fmt.Sprintf("%s %s", base, agora.Format("15:04:05"))
}

// EncontrarRotulo localiza o rótulo de um dia pela data: match exato com a
// base dd/MM/yyyy, senão o último (mais recente) dos rótulos com esse prefixo.
// Vazio quando nenhum existe.
func EncontrarRotulo(data time.Time, rotulos []string) string {
	base := data.Format("02/01/2006")
	var candidatos []string
	for _, r := range rotulos {
		if r == base {
			return r
		}
		if strings.HasPrefix(r, base) {
			candidatos = append(candidatos, r)
		}
	}
	if len(candidatos) == 0 {
		return ""
	}
	sort.Strings(candidatos)
	return candidatos[len(candidatos)-1]
}

func contemRotulo(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
