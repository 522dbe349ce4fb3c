package repository

import "github.com/lucashm/pousada-ops-api/internal/domain/entity"

// MovimentoRepository define o porto do ledger de movimentos. O ledger é
// append-only: não há Update nem Delete.
type MovimentoRepository interface {
	// Append persiste os movimentos atribuindo a ordem de inserção sequencial.
	Append(movs []entity.Movimento) error
	// ListAll devolve o ledger completo em ordem de inserção.
	ListAll() ([]entity.Movimento, error)
	ListByProduto(produto string) ([]entity.Movimento, error)
}
