package repository

import "github.com/lucashm/pousada-ops-api/internal/domain/entity"

// ProdutoRepository define o porto de persistência para Produto (DIP).
type ProdutoRepository interface {
	Create(produto *entity.Produto) error
	GetByNome(nome string) (*entity.Produto, error)
	Update(produto *entity.Produto) error
	List(somenteAtivos bool) ([]*entity.Produto, error)
}
