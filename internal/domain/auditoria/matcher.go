package auditoria

import (
	"fmt"
	"strings"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// Indice mapeia localizador normalizado -> bloco da auditoria do dia. Só
// blocos do sistema primário entram no índice; sub-linhas de outras fontes
// nunca são alvo de match.
type Indice map[string]*entity.AuditoriaBloco

// IndexarBlocos constrói o índice de match de um dia de auditoria.
func IndexarBlocos(blocos []*entity.AuditoriaBloco, sistemaPrimario string) Indice {
	idx := make(Indice, len(blocos))
	for _, b := range blocos {
		if !strings.EqualFold(strings.TrimSpace(b.Sistema), sistemaPrimario) {
			continue
		}
		loc := NormalizeLocalizador(b.Localizador)
		if loc == "" {
			continue
		}
		if _, existe := idx[loc]; !existe {
			idx[loc] = b
		}
	}
	return idx
}

// UpsertObservacao faz o merge idempotente por tag no campo partilhado de
// observações: fragmentos anteriores com o MESMO prefixo de tag (case-
// insensitive) são descartados, fragmentos de outras fontes ficam intactos, e
// o novo fragmento é apendado. Importar o mesmo relatório duas vezes nunca
// acumula entradas duplicadas nem obsoletas.
func UpsertObservacao(existente, tag, fragmento string) string {
	prefixo := strings.ToLower(tag) + ":"
	var mantidos []string
	for _, parte := range strings.Split(existente, " | ") {
		parte = strings.TrimSpace(parte)
		if parte == "" || strings.HasPrefix(strings.ToLower(parte), prefixo) {
			continue
		}
		mantidos = append(mantidos, parte)
	}
	mantidos = append(mantidos, fmt.Sprintf("%s: %s", tag, strings.TrimSpace(fragmento)))
	return strings.Join(mantidos, " | ")
}

// TemTag informa se as observações já carregam um fragmento da tag dada.
func TemTag(observacoes, tag string) bool {
	prefixo := strings.ToLower(tag) + ":"
	for _, parte := range strings.Split(observacoes, " | ") {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(parte)), prefixo) {
			return true
		}
	}
	return false
}

// ResultadoMatch resume a aplicação de uma fonte secundária sobre o índice.
// NaoEncontrados acumula localizadores sem bloco primário; não é erro fatal.
// MarcadosNaoPago conta os blocos elegíveis sem transação paga na varredura
// do processador de canal.
type ResultadoMatch struct {
	Correspondidos  int
	Ignorados       int
	MarcadosNaoPago int
	NaoEncontrados  []string
	Atualizados     []*entity.AuditoriaBloco
}

// AplicarPagamentos aplica confirmações do gateway de pagamento (Niara) sobre
// o índice: define o rótulo de pagamento e faz o merge da observação taggeada.
// Localizadores que normalizam para vazio são descartados.
func AplicarPagamentos(idx Indice, registros []entity.RegistroPagamento, tag string) ResultadoMatch {
	var res ResultadoMatch
	for _, r := range registros {
		loc := NormalizeLocalizador(r.Localizador)
		if loc == "" {
			continue
		}
		bloco, ok := idx[loc]
		if !ok {
			res.NaoEncontrados = append(res.NaoEncontrados, loc)
			continue
		}
		bloco.Pagamento = rotuloPagamento(r.Pago)
		bloco.Observacoes = UpsertObservacao(bloco.Observacoes, tag, descreverPagamento(r))
		res.Correspondidos++
		res.Atualizados = appendBloco(res.Atualizados, bloco)
	}
	return res
}

// AplicarBee2Pay varre o índice inteiro contra as transações agregadas do
// processador de canal. Pula tarifários excluídos (depósito/TED/PIX) e blocos
// já anotados pelo gateway, que tem precedência e nunca é sobrescrito. Blocos
// elegíveis com transação paga recebem "Pago" e a observação taggeada; os
// restantes são marcados explicitamente "Não Pago", nunca deixados em branco.
func AplicarBee2Pay(idx Indice, registros []entity.RegistroPagamento, tag, tagGateway string) ResultadoMatch {
	var res ResultadoMatch
	porLoc := make(map[string]entity.RegistroPagamento, len(registros))
	for _, r := range registros {
		loc := NormalizeLocalizador(r.Localizador)
		if loc == "" {
			continue
		}
		if _, ok := idx[loc]; !ok {
			res.NaoEncontrados = append(res.NaoEncontrados, loc)
			continue
		}
		porLoc[loc] = r
	}
	for loc, bloco := range idx {
		if SkipTarifario(bloco.Tarifarios) || TemTag(bloco.Observacoes, tagGateway) {
			res.Ignorados++
			continue
		}
		if r, ok := porLoc[loc]; ok && r.Pago {
			bloco.Pagamento = entity.PagamentoPago
			bloco.Observacoes = UpsertObservacao(bloco.Observacoes, tag, descreverPagamento(r))
			res.Correspondidos++
		} else {
			bloco.Pagamento = entity.PagamentoNaoPago
			res.MarcadosNaoPago++
		}
		res.Atualizados = appendBloco(res.Atualizados, bloco)
	}
	return res
}

func rotuloPagamento(pago bool) string {
	if pago {
		return entity.PagamentoPago
	}
	return entity.PagamentoNaoPago
}

func descreverPagamento(r entity.RegistroPagamento) string {
	partes := []string{rotuloPagamento(r.Pago)}
	if r.Metodo != "" {
		partes = append(partes, r.Metodo)
	}
	if r.Valor.IsPositive() {
		partes = append(partes, "R$ "+r.Valor.StringFixed(2))
	}
	return strings.Join(partes, " ")
}

func appendBloco(xs []*entity.AuditoriaBloco, b *entity.AuditoriaBloco) []*entity.AuditoriaBloco {
	for _, x := range xs {
		if x == b {
			return xs
		}
	}
	return append(xs, b)
}
