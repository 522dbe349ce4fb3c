package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de persistência de produtos.
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// Create persiste um produto novo. O nome é único.
func (r *ProdutoRepo) Create(p *entity.Produto) error {
	query := `
		INSERT INTO produtos (id, nome, categoria, unidade, estoque_minimo, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nome, p.Categoria, p.Unidade, p.EstoqueMinimo, p.Ativo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByNome obtém um produto pelo nome, a chave de negócio do estoque.
func (r *ProdutoRepo) GetByNome(nome string) (*entity.Produto, error) {
	query := `
		SELECT id, nome, categoria, unidade, estoque_minimo, ativo, created_at, updated_at
		FROM produtos WHERE nome = $1`
	var p entity.Produto
	err := r.q.QueryRow(context.Background(), query, nome).Scan(
		&p.ID, &p.Nome, &p.Categoria, &p.Unidade, &p.EstoqueMinimo, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}

// Update atualiza o cadastro do produto.
func (r *ProdutoRepo) Update(p *entity.Produto) error {
	query := `
		UPDATE produtos SET categoria = $2, unidade = $3, estoque_minimo = $4, ativo = $5, updated_at = $6
		WHERE nome = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.Nome, p.Categoria, p.Unidade, p.EstoqueMinimo, p.Ativo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	return nil
}

// List devolve os produtos por nome ascendente.
func (r *ProdutoRepo) List(somenteAtivos bool) ([]*entity.Produto, error) {
	query := `
		SELECT id, nome, categoria, unidade, estoque_minimo, ativo, created_at, updated_at
		FROM produtos`
	if somenteAtivos {
		query += ` WHERE ativo`
	}
	query += ` ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produto
	for rows.Next() {
		var p entity.Produto
		if err := rows.Scan(&p.ID, &p.Nome, &p.Categoria, &p.Unidade, &p.EstoqueMinimo, &p.Ativo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
