package auditoria

import (
	"sort"
	"strings"
	"time"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// AgruparReservas colapsa linhas de relatório com o mesmo localizador
// (igualdade após trim) numa reserva agregada. A primeira linha do grupo
// fornece status, data de criação, origem, datas de estadia e titular;
// tarifários e aptos distintos são unidos por " + "; o total é a soma.
// A saída vem ordenada por check-in ascendente (datas ilegíveis primeiro,
// como tempo zero), desempate por localizador.
func AgruparReservas(linhas []entity.LinhaReserva, vocab Vocabulario) []entity.Reserva {
	type grupo struct {
		reserva    entity.Reserva
		tarifarios []string
		aptos      []string
	}
	porLocalizador := make(map[string]*grupo)
	var ordem []string

	for _, l := range linhas {
		loc := strings.TrimSpace(l.Localizador)
		if loc == "" {
			continue
		}
		g, ok := porLocalizador[loc]
		if !ok {
			g = &grupo{reserva: entity.Reserva{
				Localizador: loc,
				Status:      NormalizeStatus(l.Status),
				DataCriacao: l.DataCriacao,
				Origem:      vocab.NormalizeOrigem(l.Origem),
				CheckIn:     l.CheckIn,
				CheckOut:    l.CheckOut,
				Titular:     ExtractTitular(l.Hospedes),
			}}
			porLocalizador[loc] = g
			ordem = append(ordem, loc)
		}
		g.reserva.Quartos++
		g.reserva.Total = g.reserva.Total.Add(l.Valor)
		g.tarifarios = appendUnique(g.tarifarios, strings.TrimSpace(l.Tarifario))
		g.aptos = appendUnique(g.aptos, strings.TrimSpace(l.Apto))
	}

	out := make([]entity.Reserva, 0, len(ordem))
	for _, loc := range ordem {
		g := porLocalizador[loc]
		g.reserva.Tarifarios = strings.Join(g.tarifarios, " + ")
		g.reserva.Aptos = strings.Join(g.aptos, " + ")
		if len(g.tarifarios) > 1 {
			g.reserva.Flags = append(g.reserva.Flags, entity.FlagTarifasMultiplas)
		}
		if len(g.aptos) > 1 {
			g.reserva.Flags = append(g.reserva.Flags, entity.FlagAptosMultiplos)
		}
		out = append(out, g.reserva)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := checkinOuZero(out[i]), checkinOuZero(out[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return out[i].Localizador < out[j].Localizador
	})
	return out
}

func appendUnique(xs []string, x string) []string {
	if x == "" {
		return xs
	}
	for _, v := range xs {
		if v == x {
			return xs
		}
	}
	return append(xs, x)
}

func checkinOuZero(r entity.Reserva) time.Time {
	if r.CheckIn == nil {
		return time.Time{}
	}
	return *r.CheckIn
}
