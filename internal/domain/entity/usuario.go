package entity

import "time"

// Roles válidos de Usuario.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// Usuario representa um operador do sistema.
type Usuario struct {
	ID        string
	Email     string
	SenhaHash string // hash bcrypt, nunca em claro no domínio após persistir
	Nome      string
	Role      string // admin, operador
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
