package repository

import (
	"time"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// GastoFiltro restringe a listagem do painel de gastos. Campos zero não filtram.
type GastoFiltro struct {
	DataInicio *time.Time
	DataFim    *time.Time
	Fornecedor string
	Categoria  string
	FormaPgto  string
	Numero     string
}

// NotaRepository define o porto de persistência para notas de compra e itens.
type NotaRepository interface {
	Create(nota *entity.Nota, itens []entity.NotaItem) error
	// Exists verifica a chave de negócio (data, fornecedor, numero).
	Exists(data time.Time, fornecedor, numero string) (bool, error)
	GetByID(id string) (*entity.Nota, []entity.NotaItem, error)
	// ListGastos devolve o join nota × item filtrado, ordenado por data.
	ListGastos(filtro GastoFiltro) ([]entity.GastoLinha, error)
}
