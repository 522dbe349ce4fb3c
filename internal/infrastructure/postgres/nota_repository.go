package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

var _ repository.NotaRepository = (*NotaRepo)(nil)

// NotaRepo implementação do porto NotaRepository sobre PostgreSQL.
type NotaRepo struct {
	q Querier
}

// NewNotaRepository constrói o adaptador de persistência de notas.
func NewNotaRepository(q Querier) *NotaRepo {
	return &NotaRepo{q: q}
}

// Create persiste a nota com os seus itens.
func (r *NotaRepo) Create(nota *entity.Nota, itens []entity.NotaItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO notas (id, data, fornecedor, numero, forma_pagamento, total, observacoes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		nota.ID, nota.Data, nota.Fornecedor, nota.Numero, nota.FormaPagamento,
		nota.Total, nota.Observacoes, nota.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota: %w", err)
	}
	for _, item := range itens {
		_, err := r.q.Exec(ctx, `
			INSERT INTO nota_itens (id, nota_id, produto, quantidade, preco_unitario, total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.NotaID, item.Produto, item.Quantidade, item.PrecoUnitario, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert nota item: %w", err)
		}
	}
	return nil
}

// Exists verifica a chave de negócio (data, fornecedor, numero).
func (r *NotaRepo) Exists(data time.Time, fornecedor, numero string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM notas WHERE data = $1 AND fornecedor = $2 AND numero = $3)`,
		data, fornecedor, numero,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists nota: %w", err)
	}
	return existe, nil
}

// GetByID obtém a nota e os itens.
func (r *NotaRepo) GetByID(id string) (*entity.Nota, []entity.NotaItem, error) {
	ctx := context.Background()
	var n entity.Nota
	err := r.q.QueryRow(ctx, `
		SELECT id, data, fornecedor, numero, forma_pagamento, total, observacoes, created_at
		FROM notas WHERE id = $1`, id,
	).Scan(&n.ID, &n.Data, &n.Fornecedor, &n.Numero, &n.FormaPagamento, &n.Total, &n.Observacoes, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get nota: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, nota_id, produto, quantidade, preco_unitario, total
		FROM nota_itens WHERE nota_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list nota itens: %w", err)
	}
	defer rows.Close()
	var itens []entity.NotaItem
	for rows.Next() {
		var item entity.NotaItem
		if err := rows.Scan(&item.ID, &item.NotaID, &item.Produto, &item.Quantidade, &item.PrecoUnitario, &item.Total); err != nil {
			return nil, nil, fmt.Errorf("scan nota item: %w", err)
		}
		itens = append(itens, item)
	}
	return &n, itens, rows.Err()
}

// ListGastos devolve o join nota × item filtrado, ordenado por data. A
// categoria vem do cadastro do produto; itens de produtos apagados ficam com
// categoria vazia.
func (r *NotaRepo) ListGastos(filtro repository.GastoFiltro) ([]entity.GastoLinha, error) {
	query := `
		SELECT n.id, n.data, n.fornecedor, n.numero, n.forma_pagamento,
		       i.produto, COALESCE(p.categoria, ''), i.quantidade, i.preco_unitario, i.total
		FROM notas n
		JOIN nota_itens i ON i.nota_id = n.id
		LEFT JOIN produtos p ON p.nome = i.produto
		WHERE 1=1`
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(" AND "+cond, len(args))
	}
	if filtro.DataInicio != nil {
		add("n.data >= $%d", *filtro.DataInicio)
	}
	if filtro.DataFim != nil {
		add("n.data <= $%d", *filtro.DataFim)
	}
	if filtro.Fornecedor != "" {
		add("LOWER(n.fornecedor) = LOWER($%d)", filtro.Fornecedor)
	}
	if filtro.Categoria != "" {
		add("p.categoria = $%d", filtro.Categoria)
	}
	if filtro.FormaPgto != "" {
		add("n.forma_pagamento = $%d", filtro.FormaPgto)
	}
	if filtro.Numero != "" {
		add("n.numero = $%d", filtro.Numero)
	}
	query += " ORDER BY n.data, n.id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()
	var out []entity.GastoLinha
	for rows.Next() {
		var g entity.GastoLinha
		if err := rows.Scan(&g.NotaID, &g.Data, &g.Fornecedor, &g.Numero, &g.FormaPagamento,
			&g.Produto, &g.Categoria, &g.Quantidade, &g.PrecoUnitario, &g.Total); err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
