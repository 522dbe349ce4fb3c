package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrBusy               = errors.New("outra importação em andamento")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
)

// SchemaMismatchError indica que uma planilha importada não contém as
// colunas obrigatórias esperadas. Carrega o cabeçalho encontrado para
// que o operador saiba o que foi lido.
type SchemaMismatchError struct {
	Fonte    string   // origem da planilha (Omnibees, Niara, Bee2Pay, ...)
	Faltando []string // colunas obrigatórias ausentes
	Header   string   // cabeçalho detectado, para diagnóstico
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("planilha %s sem colunas obrigatórias: %s (cabeçalho: %s)",
		e.Fonte, strings.Join(e.Faltando, ", "), e.Header)
}

// Is permite errors.Is(err, ErrInvalidInput) para mapeamento HTTP.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrInvalidInput
}
