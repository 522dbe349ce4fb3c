package oplock

import (
	"context"
	"time"

	"github.com/lucashm/pousada-ops-api/internal/domain"
)

// Lock serializa as operações mutantes do serviço (notas, contagens e
// importações de auditoria): um único escritor de cada vez, com espera
// limitada antes de devolver ErrBusy em vez de enfileirar indefinidamente.
type Lock struct {
	sem  chan struct{}
	wait time.Duration
}

// New cria o lock com o tempo máximo de espera.
func New(wait time.Duration) *Lock {
	sem := make(chan struct{}, 1)
	sem <- struct{}{}
	return &Lock{sem: sem, wait: wait}
}

// Acquire tenta obter o lock dentro do prazo. Devolve domain.ErrBusy quando o
// prazo expira sem aquisição; nesse caso nenhum estado foi tocado.
func (l *Lock) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case <-l.sem:
		return nil
	case <-timer.C:
		return domain.ErrBusy
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release devolve o lock. Chamar sem Acquire anterior é um erro de programação.
func (l *Lock) Release() {
	l.sem <- struct{}{}
}
