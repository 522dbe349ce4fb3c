package auditoria

import (
	"fmt"
	"time"

	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

// Deduper é a guarda temporal contra reimportação acidental do mesmo arquivo:
// não é exactly-once, só impede o reprocessamento dentro de uma janela
// operacional curta. Entradas velhas são podadas e o histórico é limitado.
type Deduper struct {
	repo       repository.ImportHistoryRepository
	janela     time.Duration
	maxEntries int
}

// NewDeduper constrói a guarda com a janela e o limite de entradas.
func NewDeduper(repo repository.ImportHistoryRepository, janela time.Duration, maxEntries int) *Deduper {
	return &Deduper{repo: repo, janela: janela, maxEntries: maxEntries}
}

// Assinatura deriva a chave de deduplicação do conteúdo: checksum + tamanho +
// data de modificação quando disponíveis, senão o identificador do arquivo.
func Assinatura(arquivo, checksum string, tamanho, modificado int64) string {
	if checksum != "" {
		return fmt.Sprintf("%s|%d|%d", checksum, tamanho, modificado)
	}
	return arquivo
}

// Begin registra o início de uma importação. Devolve ErrDuplicate quando a
// mesma assinatura foi processada dentro da janela. Aproveita a passagem para
// podar entradas com mais de 6× a janela e aplicar o limite do histórico.
func (d *Deduper) Begin(assinatura, tipo string) error {
	now := time.Now().Unix()

	if err := d.repo.DeleteOlderThan(now - int64(6*d.janela/time.Second)); err != nil {
		return err
	}
	if n, err := d.repo.Count(); err != nil {
		return err
	} else if n >= d.maxEntries {
		if err := d.repo.DeleteOldest(n - d.maxEntries + 1); err != nil {
			return err
		}
	}

	existente, err := d.repo.Get(assinatura)
	if err != nil {
		return err
	}
	if existente != nil && now-existente.Iniciado < int64(d.janela/time.Second) {
		return fmt.Errorf("arquivo já importado há menos de %s: %w", d.janela, domain.ErrDuplicate)
	}

	return d.repo.Put(&repository.ImportEntry{
		Assinatura: assinatura,
		Tipo:       tipo,
		Iniciado:   now,
		Finalizado: false,
	})
}

// Finalize marca a importação como concluída com sucesso.
func (d *Deduper) Finalize(assinatura string) error {
	entry, err := d.repo.Get(assinatura)
	if err != nil || entry == nil {
		return err
	}
	entry.Finalizado = true
	return d.repo.Put(entry)
}

// Abort remove a entrada de uma importação falhada, permitindo nova tentativa
// imediata.
func (d *Deduper) Abort(assinatura string) error {
	return d.repo.Delete(assinatura)
}
