package dto

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT e dados do usuário autenticado.
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}

// RegisterRequest dados para criação de usuário.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
	Role     string `json:"role"`
}

// UserResponse usuário sem campos sensíveis.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Role  string `json:"role"`
}
