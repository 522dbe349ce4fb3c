package auditoria

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucashm/pousada-ops-api/internal/domain/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/tabular"
)

// SchemaOmnibees descreve o relatório de reservas do motor de reservas.
func SchemaOmnibees() tabular.Schema {
	return tabular.Schema{
		Fonte:  "Omnibees",
		Anchor: "Localizador",
		Fields: []tabular.Field{
			{Name: "localizador", Synonyms: []string{"Localizador", "Nº Reserva", "Reserva"}, Required: true},
			{Name: "status", Synonyms: []string{"Status", "Situação"}, Required: true},
			{Name: "data_criacao", Synonyms: []string{"Data de Criação", "Data Criação", "Criada em"}},
			{Name: "origem", Synonyms: []string{"Origem", "Canal"}},
			{Name: "checkin", Synonyms: []string{"Check-in", "Checkin", "Chegada"}, Required: true},
			{Name: "checkout", Synonyms: []string{"Check-out", "Checkout", "Saída"}},
			{Name: "hospedes", Synonyms: []string{"Hóspedes", "Hóspede", "Nome do Hóspede"}},
			{Name: "tarifario", Synonyms: []string{"Tarifário", "Tarifa", "Plano Tarifário"}},
			{Name: "apto", Synonyms: []string{"Apto", "Quarto", "UH", "Acomodação"}},
			{Name: "valor", Synonyms: []string{"Valor Total", "Valor", "Total"}, Required: true},
		},
	}
}

// SchemaNiara descreve o relatório de pagamentos do gateway.
func SchemaNiara() tabular.Schema {
	return tabular.Schema{
		Fonte:  "Niara",
		Anchor: "Localizador",
		Fields: []tabular.Field{
			{Name: "localizador", Synonyms: []string{"Localizador", "Reserva", "Código da Reserva"}, Required: true},
			{Name: "status", Synonyms: []string{"Status do Pagamento", "Status", "Situação"}, Required: true},
			{Name: "metodo", Synonyms: []string{"Forma de Pagamento", "Método", "Meio de Pagamento"}},
			{Name: "valor", Synonyms: []string{"Valor Pago", "Valor", "Total"}},
			{Name: "data", Synonyms: []string{"Data do Pagamento", "Data", "Criada em"}},
		},
	}
}

// SchemaBee2Pay descreve o relatório de transações do processador de canal.
func SchemaBee2Pay() tabular.Schema {
	return tabular.Schema{
		Fonte:  "Bee2Pay",
		Anchor: "Reserva",
		Fields: []tabular.Field{
			{Name: "localizador", Synonyms: []string{"Reserva", "Localizador", "Código"}, Required: true},
			{Name: "status", Synonyms: []string{"Status da Transação", "Status", "Situação"}, Required: true},
			{Name: "retorno", Synonyms: []string{"Retorno", "Mensagem", "Resposta"}},
			{Name: "metodo", Synonyms: []string{"Bandeira", "Forma de Pagamento", "Método"}},
			{Name: "valor", Synonyms: []string{"Valor Capturado", "Valor", "Total"}},
			{Name: "data", Synonyms: []string{"Data da Transação", "Data"}},
		},
	}
}

// LinhasReserva converte o resultado do parser nas linhas brutas do grouper,
// descartando linhas vazias ou sem localizador.
func LinhasReserva(res *tabular.Result) []entity.LinhaReserva {
	out := make([]entity.LinhaReserva, 0, len(res.Rows))
	for _, row := range res.Rows {
		if row.Empty() || row.String("localizador") == "" {
			continue
		}
		out = append(out, entity.LinhaReserva{
			Localizador: row.String("localizador"),
			Status:      row.String("status"),
			DataCriacao: row.Date("data_criacao"),
			Origem:      row.String("origem"),
			CheckIn:     row.Date("checkin"),
			CheckOut:    row.Date("checkout"),
			Hospedes:    row.String("hospedes"),
			Tarifario:   row.String("tarifario"),
			Apto:        row.String("apto"),
			Valor:       row.Decimal("valor"),
		})
	}
	return out
}

// RegistrosNiara converte o relatório do gateway em registros de pagamento,
// decidindo pago/não pago pela heurística de status.
func RegistrosNiara(res *tabular.Result) ([]entity.RegistroPagamento, []*time.Time) {
	var registros []entity.RegistroPagamento
	var datas []*time.Time
	for _, row := range res.Rows {
		if row.Empty() || row.String("localizador") == "" {
			continue
		}
		status := row.String("status")
		registros = append(registros, entity.RegistroPagamento{
			Localizador: auditoria.NormalizeLocalizador(row.String("localizador")),
			Pago:        auditoria.IsPaidStatus(status),
			Metodo:      row.String("metodo"),
			Valor:       row.Decimal("valor"),
			Status:      status,
		})
		datas = append(datas, row.Date("data"))
	}
	return registros, datas
}

// RegistrosBee2Pay agrega as transações do processador por localizador: a
// reserva conta como paga se qualquer transação dela estiver paga, e o valor é
// a soma das transações pagas.
func RegistrosBee2Pay(res *tabular.Result) ([]entity.RegistroPagamento, []*time.Time) {
	type agg struct {
		registro entity.RegistroPagamento
	}
	porLocalizador := make(map[string]*agg)
	var ordem []string
	var datas []*time.Time

	for _, row := range res.Rows {
		if row.Empty() || row.String("localizador") == "" {
			continue
		}
		loc := auditoria.NormalizeLocalizador(row.String("localizador"))
		status := row.String("status")
		valor := row.Decimal("valor")
		pago := auditoria.IsBee2PayPaid(status, row.String("retorno"), valor)
		datas = append(datas, row.Date("data"))

		a, ok := porLocalizador[loc]
		if !ok {
			a = &agg{registro: entity.RegistroPagamento{
				Localizador: loc,
				Status:      status,
				Valor:       decimal.Zero,
			}}
			porLocalizador[loc] = a
			ordem = append(ordem, loc)
		}
		if pago {
			a.registro.Pago = true
			a.registro.Valor = a.registro.Valor.Add(valor)
			if a.registro.Metodo == "" {
				a.registro.Metodo = row.String("metodo")
			}
		}
	}

	out := make([]entity.RegistroPagamento, 0, len(ordem))
	for _, loc := range ordem {
		out = append(out, porLocalizador[loc].registro)
	}
	return out, datas
}

var dataNoTextoRe = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)

// DataPeriodoListado procura o rótulo "Período Listado" do relatório Bee2Pay e
// devolve a primeira data associada (na mesma linha ou embutida no texto).
// Nil quando o rótulo não existe; nesse caso vale a data mais frequente.
func DataPeriodoListado(grid tabular.Grid) *time.Time {
	for _, row := range grid {
		for j, cell := range row {
			s, ok := cell.(string)
			if !ok || !strings.Contains(auditoria.Fold(s), "periodo listado") {
				continue
			}
			if m := dataNoTextoRe.FindString(s); m != "" {
				if d := tabular.CoerceDate(m); d != nil {
					return d
				}
			}
			for _, next := range row[j+1:] {
				if d := tabular.CoerceDate(next); d != nil {
					return d
				}
			}
		}
	}
	return nil
}
