package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucashm/pousada-ops-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com os
// repositórios atados à tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com os repos atados e faz Commit ou
// Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Produtos:    NewProdutoRepository(tx),
		Notas:       NewNotaRepository(tx),
		Movimentos:  NewMovimentoRepository(tx),
		Inventarios: NewInventarioRepository(tx),
		Consumos:    NewConsumoRepository(tx),
		Auditoria:   NewAuditoriaRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
