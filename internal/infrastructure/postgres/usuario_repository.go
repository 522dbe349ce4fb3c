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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação do porto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador de usuários.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste um usuário novo. O email é único.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, email, senha_hash, nome, role, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.SenhaHash, u.Nome, u.Role, u.Ativo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByEmail obtém um usuário pelo email, ou nil.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.get(`SELECT id, email, senha_hash, nome, role, ativo, created_at, updated_at
		FROM usuarios WHERE email = $1`, email)
}

// GetByID obtém um usuário pelo id, ou nil.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.get(`SELECT id, email, senha_hash, nome, role, ativo, created_at, updated_at
		FROM usuarios WHERE id = $1`, id)
}

func (r *UsuarioRepo) get(query string, args ...any) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.Email, &u.SenhaHash, &u.Nome, &u.Role, &u.Ativo, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
