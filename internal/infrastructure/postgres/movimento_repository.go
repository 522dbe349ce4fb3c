package postgres

import (
	"context"
	"fmt"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

var _ repository.MovimentoRepository = (*MovimentoRepo)(nil)

// MovimentoRepo implementação do porto do ledger de movimentos. A tabela é
// append-only; a coluna ordem é um BIGSERIAL que materializa a ordem de
// inserção usada nos desempates do custo médio.
type MovimentoRepo struct {
	q Querier
}

// NewMovimentoRepository constrói o adaptador do ledger.
func NewMovimentoRepository(q Querier) *MovimentoRepo {
	return &MovimentoRepo{q: q}
}

// Append persiste os movimentos. A ordem atribuída pelo banco é devolvida no
// próprio slice.
func (r *MovimentoRepo) Append(movs []entity.Movimento) error {
	ctx := context.Background()
	for i := range movs {
		err := r.q.QueryRow(ctx, `
			INSERT INTO movimentos (id, criado_em, data_efetiva, tipo, referencia, produto, quantidade, custo_unitario, valor_total, observacao)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING ordem`,
			movs[i].ID, movs[i].CriadoEm, movs[i].DataEfetiva, movs[i].Tipo, movs[i].Referencia,
			movs[i].Produto, movs[i].Quantidade, movs[i].CustoUnitario, movs[i].ValorTotal, movs[i].Observacao,
		).Scan(&movs[i].Ordem)
		if err != nil {
			return fmt.Errorf("insert movimento: %w", err)
		}
	}
	return nil
}

// ListAll devolve o ledger completo em ordem de inserção.
func (r *MovimentoRepo) ListAll() ([]entity.Movimento, error) {
	return r.list(`SELECT id, criado_em, data_efetiva, tipo, referencia, produto, quantidade, custo_unitario, valor_total, observacao, ordem
		FROM movimentos ORDER BY ordem`)
}

// ListByProduto devolve os movimentos de um produto em ordem de inserção.
func (r *MovimentoRepo) ListByProduto(produto string) ([]entity.Movimento, error) {
	return r.list(`SELECT id, criado_em, data_efetiva, tipo, referencia, produto, quantidade, custo_unitario, valor_total, observacao, ordem
		FROM movimentos WHERE produto = $1 ORDER BY ordem`, produto)
}

func (r *MovimentoRepo) list(query string, args ...any) ([]entity.Movimento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()
	var out []entity.Movimento
	for rows.Next() {
		var m entity.Movimento
		if err := rows.Scan(&m.ID, &m.CriadoEm, &m.DataEfetiva, &m.Tipo, &m.Referencia,
			&m.Produto, &m.Quantidade, &m.CustoUnitario, &m.ValorTotal, &m.Observacao, &m.Ordem); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
