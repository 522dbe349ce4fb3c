package auditoria_test

import (
	"context"
	"sort"
	"strings"

	appauditoria "github.com/lucashm/pousada-ops-api/internal/application/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/application/ports"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
	"github.com/lucashm/pousada-ops-api/pkg/logger"
)

// Fakes em memória dos portos da auditoria.

type memAudit struct {
	dias       map[string]*entity.AuditoriaDia // por rótulo
	blocos     map[string][]*entity.AuditoriaBloco
	registros  []*entity.RegistroImportacao
	historico  map[string]*repository.ImportEntry
	historicoN []string // assinaturas em ordem de inserção
}

func newMemAudit() *memAudit {
	return &memAudit{
		dias:      map[string]*entity.AuditoriaDia{},
		blocos:    map[string][]*entity.AuditoriaBloco{},
		historico: map[string]*repository.ImportEntry{},
	}
}

type auditRepo struct{ s *memAudit }

func (r auditRepo) CreateDia(dia *entity.AuditoriaDia, blocos []*entity.AuditoriaBloco) error {
	r.s.dias[dia.Rotulo] = dia
	r.s.blocos[dia.ID] = blocos
	return nil
}

func (r auditRepo) GetDiaByRotulo(rotulo string) (*entity.AuditoriaDia, error) {
	return r.s.dias[rotulo], nil
}

func (r auditRepo) ListRotulosComPrefixo(prefixo string) ([]string, error) {
	var out []string
	for rotulo := range r.s.dias {
		if strings.HasPrefix(rotulo, prefixo) {
			out = append(out, rotulo)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r auditRepo) ListBlocos(diaID string) ([]*entity.AuditoriaBloco, error) {
	return r.s.blocos[diaID], nil
}

func (r auditRepo) UpdateBlocos(_ []*entity.AuditoriaBloco) error {
	// Os blocos são ponteiros partilhados com o store; nada a copiar.
	return nil
}

func (r auditRepo) CreateRegistroImportacao(reg *entity.RegistroImportacao) error {
	r.s.registros = append(r.s.registros, reg)
	return nil
}

type historyRepo struct{ s *memAudit }

func (r historyRepo) Get(assinatura string) (*repository.ImportEntry, error) {
	return r.s.historico[assinatura], nil
}

func (r historyRepo) Put(entry *repository.ImportEntry) error {
	if _, ok := r.s.historico[entry.Assinatura]; !ok {
		r.s.historicoN = append(r.s.historicoN, entry.Assinatura)
	}
	r.s.historico[entry.Assinatura] = entry
	return nil
}

func (r historyRepo) Delete(assinatura string) error {
	delete(r.s.historico, assinatura)
	for i, sig := range r.s.historicoN {
		if sig == assinatura {
			r.s.historicoN = append(r.s.historicoN[:i], r.s.historicoN[i+1:]...)
			break
		}
	}
	return nil
}

func (r historyRepo) DeleteOlderThan(cutoffUnix int64) error {
	for sig, entry := range r.s.historico {
		if entry.Iniciado < cutoffUnix {
			_ = r.Delete(sig)
		}
	}
	return nil
}

func (r historyRepo) Count() (int, error) {
	return len(r.s.historico), nil
}

func (r historyRepo) DeleteOldest(n int) error {
	for n > 0 && len(r.s.historicoN) > 0 {
		_ = r.Delete(r.s.historicoN[0])
		n--
	}
	return nil
}

type txRunner struct{ s *memAudit }

func (t txRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{Auditoria: auditRepo{t.s}})
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func testConfig() appauditoria.Config {
	return appauditoria.Config{
		SistemaPrimario: "Omnibees",
		TagNiara:        "Niara",
		TagBee2Pay:      "Bee2Pay",
		Origens:         []string{"Booking.com", "Expedia", "Site Próprio"},
	}
}
