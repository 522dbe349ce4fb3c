package estoque

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/estoque"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

// ProdutoUseCase cadastro de produtos e relatório de estoque atual.
type ProdutoUseCase struct {
	produtoRepo repository.ProdutoRepository
	movRepo     repository.MovimentoRepository
	categorias  []string
	unidades    []string
}

// NewProdutoUseCase constrói o caso de uso. Os vocabulários de categoria e
// unidade vêm da configuração; listas vazias desativam a validação.
func NewProdutoUseCase(produtoRepo repository.ProdutoRepository, movRepo repository.MovimentoRepository, categorias, unidades []string) *ProdutoUseCase {
	return &ProdutoUseCase{
		produtoRepo: produtoRepo,
		movRepo:     movRepo,
		categorias:  categorias,
		unidades:    unidades,
	}
}

// Criar valida e persiste um produto novo, ativo por padrão.
func (uc *ProdutoUseCase) Criar(in dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if !contem(uc.categorias, in.Categoria) {
		return nil, domain.ErrInvalidInput
	}
	if !contem(uc.unidades, in.Unidade) {
		return nil, domain.ErrInvalidInput
	}
	if in.EstoqueMinimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.produtoRepo.GetByNome(in.Nome)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	p := &entity.Produto{
		ID:            uuid.New().String(),
		Nome:          in.Nome,
		Categoria:     in.Categoria,
		Unidade:       in.Unidade,
		EstoqueMinimo: in.EstoqueMinimo,
		Ativo:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.produtoRepo.Create(p); err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

// Listar devolve os produtos cadastrados.
func (uc *ProdutoUseCase) Listar(somenteAtivos bool) ([]dto.ProdutoResponse, error) {
	produtos, err := uc.produtoRepo.List(somenteAtivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		out = append(out, *toProdutoResponse(p))
	}
	return out, nil
}

// RelatorioEstoque deriva o estoque atual de cada produto do ledger completo e
// o classifica BAIXO/OK contra o mínimo cadastrado.
func (uc *ProdutoUseCase) RelatorioEstoque() ([]dto.EstoqueAtualItem, error) {
	produtos, err := uc.produtoRepo.List(false)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.ListAll()
	if err != nil {
		return nil, err
	}

	agora := time.Now()
	stocks := estoque.StockMapAsOf(movs, agora)
	custos := estoque.AvgCostMapAsOf(movs, agora)

	out := make([]dto.EstoqueAtualItem, 0, len(produtos))
	for _, p := range produtos {
		atual := stocks[p.Nome]
		status := entity.EstoqueStatusOK
		if atual.LessThan(p.EstoqueMinimo) {
			status = entity.EstoqueStatusBaixo
		}
		out = append(out, dto.EstoqueAtualItem{
			Produto:       p.Nome,
			Categoria:     p.Categoria,
			Unidade:       p.Unidade,
			Estoque:       atual,
			EstoqueMinimo: p.EstoqueMinimo,
			CustoMedio:    custos[p.Nome],
			Status:        status,
		})
	}
	return out, nil
}

// Movimentos devolve o ledger de um produto em ordem de inserção. O histórico
// inclui movimentos de produtos hoje inativos.
func (uc *ProdutoUseCase) Movimentos(produto string) ([]dto.MovimentoResponse, error) {
	if strings.TrimSpace(produto) == "" {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListByProduto(produto)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimentoResponse{
			Data:          m.DataEfetiva.Format("02/01/2006"),
			Tipo:          m.Tipo,
			Referencia:    m.Referencia,
			Quantidade:    m.Quantidade,
			CustoUnitario: m.CustoUnitario,
			ValorTotal:    m.ValorTotal,
			Observacao:    m.Observacao,
		})
	}
	return out, nil
}

func toProdutoResponse(p *entity.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:            p.ID,
		Nome:          p.Nome,
		Categoria:     p.Categoria,
		Unidade:       p.Unidade,
		EstoqueMinimo: p.EstoqueMinimo,
		Ativo:         p.Ativo,
	}
}

func contem(xs []string, x string) bool {
	if len(xs) == 0 {
		return true
	}
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
