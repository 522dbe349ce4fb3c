package auditoria

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// Status canônicos de reserva.
const (
	StatusConfirmada = "Confirmada"
	StatusCancelada  = "Cancelada"
	StatusAlterada   = "Alterada"
)

// Vocabulario configura as heurísticas de normalização textual. Entregue por
// configuração para que os testes possam substituir os vocabulários do domínio.
type Vocabulario struct {
	Origens []string // rótulos canônicos de canal de origem
}

// NormalizeLocalizador trunca o identificador no primeiro "/" e apara espaços.
// "98765/ABC" e "98765" identificam a mesma reserva.
func NormalizeLocalizador(s string) string {
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ExtractTitular devolve o primeiro segmento da lista de hóspedes separada
// por ";", que por convenção dos relatórios é o titular da reserva.
func ExtractTitular(hospedes string) string {
	if i := strings.Index(hospedes, ";"); i >= 0 {
		hospedes = hospedes[:i]
	}
	return strings.TrimSpace(hospedes)
}

// NormalizeStatus reduz o texto livre de status aos rótulos canônicos por
// prefixo. Texto irreconhecível passa aparado, sem erro.
func NormalizeStatus(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(lower, "confirm"):
		return StatusConfirmada
	case strings.HasPrefix(lower, "cancel"):
		return StatusCancelada
	case strings.HasPrefix(lower, "alter"):
		return StatusAlterada
	default:
		return strings.TrimSpace(s)
	}
}

// NormalizeOrigem mapeia o texto livre de canal para o primeiro rótulo
// canônico que aparece como substring (case-insensitive). Sem match, passa
// aparado.
func (v Vocabulario) NormalizeOrigem(s string) string {
	lower := strings.ToLower(s)
	for _, canon := range v.Origens {
		if strings.Contains(lower, strings.ToLower(canon)) {
			return canon
		}
	}
	return strings.TrimSpace(s)
}

// IsPaidStatus decide pago/não pago a partir do texto de status do gateway.
// Sinal positivo é avaliado primeiro ("Aprovado - pendente de captura" conta
// como pago); pendências, cancelamentos, estornos, recusas e qualquer texto
// desconhecido caem no não pago (política conservadora, não acidente de
// parsing).
func IsPaidStatus(s string) bool {
	lower := strings.ToLower(s)
	for _, pos := range []string{"confirm", "aprov", "pago", "liquid", "baixa"} {
		if strings.Contains(lower, pos) {
			return true
		}
	}
	return false
}

// IsBee2PayPaid decide pago/não pago para uma transação do processador de
// canal: status de autorização, retorno de sucesso, ou valor capturado
// positivo sem sinal de estorno/cancelamento.
func IsBee2PayPaid(status, retorno string, valor decimal.Decimal) bool {
	ls := strings.ToLower(status)
	for _, pos := range []string{"autoriz", "aprov", "confirm"} {
		if strings.Contains(ls, pos) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(retorno), "sucesso") {
		return true
	}
	if valor.IsPositive() && !strings.Contains(ls, "estorn") && !strings.Contains(ls, "cancel") {
		return true
	}
	return false
}

var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold remove diacríticos e põe em minúsculas, para comparações tolerantes a
// acentuação ("depósito" casa com "deposito").
func Fold(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// SkipTarifario decide se um tarifário está excluído da conciliação do
// processador de canal: depósitos via gateway e tarifas à vista por TED/PIX
// são pagos fora do processador.
func SkipTarifario(tarifario string) bool {
	f := Fold(tarifario)
	if strings.Contains(f, "niara") && strings.Contains(f, "deposito") {
		return true
	}
	if strings.Contains(f, "tarifa a vista") && (strings.Contains(f, "ted") || strings.Contains(f, "pix")) {
		return true
	}
	return false
}

// InferirDataAuditoria devolve a data de criação mais frequente entre as
// linhas (chave dia, sem hora). Empate resolve pela primeira vista. Nil quando
// nenhuma linha tem data.
func InferirDataAuditoria(linhas []entity.LinhaReserva) *time.Time {
	datas := make([]*time.Time, 0, len(linhas))
	for _, l := range linhas {
		datas = append(datas, l.DataCriacao)
	}
	return InferirData(datas)
}

// InferirData devolve o dia mais frequente entre as datas não nulas.
func InferirData(datas []*time.Time) *time.Time {
	contagem := make(map[string]int)
	primeira := make(map[string]time.Time)
	var ordem []string
	for _, dt := range datas {
		if dt == nil {
			continue
		}
		d := time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, time.UTC)
		key := d.Format("2006-01-02")
		if _, visto := contagem[key]; !visto {
			primeira[key] = d
			ordem = append(ordem, key)
		}
		contagem[key]++
	}
	if len(ordem) == 0 {
		return nil
	}
	melhor := ordem[0]
	for _, key := range ordem {
		if contagem[key] > contagem[melhor] {
			melhor = key
		}
	}
	d := primeira[melhor]
	return &d
}
