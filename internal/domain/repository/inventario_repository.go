package repository

import (
	"time"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// InventarioRepository define o porto de persistência para contagens físicas.
type InventarioRepository interface {
	Create(inv *entity.Inventario, itens []entity.InventarioItem) error
	GetByID(id string) (*entity.Inventario, error)
	GetItens(inventarioID string) ([]entity.InventarioItem, error)
	// GetAnterior devolve a contagem com a maior data estritamente menor que a
	// dada, ou nil quando não existe (primeira contagem de sempre).
	GetAnterior(data time.Time) (*entity.Inventario, error)
	// ListCronologico devolve todas as contagens por data ascendente.
	ListCronologico() ([]*entity.Inventario, error)
}

// ConsumoRepository define o porto dos registros de consumo derivados.
// As linhas de uma contagem são apagadas e reescritas como unidade.
type ConsumoRepository interface {
	DeleteByInventario(inventarioID string) error
	CreateBatch(registros []entity.Consumo) error
	ListByInventario(inventarioID string) ([]entity.Consumo, error)
}
