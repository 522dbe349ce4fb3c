package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
	"github.com/lucashm/pousada-ops-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: registro e login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register cria um usuário: faz hash da senha com bcrypt e persiste.
// Devolve ErrEmailAlreadyExists se o email já existe.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existente, _ := uc.usuarioRepo.GetByEmail(in.Email)
	if existente != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nome := in.Nome
	if nome == "" {
		nome = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperador
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:        uuid.New().String(),
		Email:     in.Email,
		SenhaHash: string(hash),
		Nome:      nome,
		Role:      role,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Login verifica email/senha, gera JWT e devolve token + usuário.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.Ativo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: *toUserResponse(u)}, nil
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	return &dto.UserResponse{ID: u.ID, Email: u.Email, Nome: u.Nome, Role: u.Role}
}
