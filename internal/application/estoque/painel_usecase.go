package estoque

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
	"github.com/lucashm/pousada-ops-api/internal/tabular"
)

// PainelUseCase painel de gastos: listagem filtrada das compras e agregados
// por mês, fornecedor e categoria.
type PainelUseCase struct {
	notaRepo repository.NotaRepository
}

// NewPainelUseCase constrói o caso de uso.
func NewPainelUseCase(notaRepo repository.NotaRepository) *PainelUseCase {
	return &PainelUseCase{notaRepo: notaRepo}
}

// Gastos devolve as linhas de compra filtradas e os totais agregados, com
// chaves ordenadas para saída estável.
func (uc *PainelUseCase) Gastos(in dto.PainelGastosRequest) (*dto.PainelGastosResponse, error) {
	filtro := repository.GastoFiltro{
		DataInicio: tabular.CoerceDate(in.DataInicio),
		DataFim:    tabular.CoerceDate(in.DataFim),
		Fornecedor: in.Fornecedor,
		Categoria:  in.Categoria,
		FormaPgto:  in.FormaPgto,
		Numero:     in.Numero,
	}

	linhas, err := uc.notaRepo.ListGastos(filtro)
	if err != nil {
		return nil, err
	}

	resp := &dto.PainelGastosResponse{Total: decimal.Zero}
	porMes := map[string]decimal.Decimal{}
	porFornecedor := map[string]decimal.Decimal{}
	porCategoria := map[string]decimal.Decimal{}

	for _, l := range linhas {
		resp.Linhas = append(resp.Linhas, dto.GastoLinhaResponse{
			Data:           l.Data.Format("02/01/2006"),
			Fornecedor:     l.Fornecedor,
			Numero:         l.Numero,
			FormaPagamento: l.FormaPagamento,
			Produto:        l.Produto,
			Categoria:      l.Categoria,
			Quantidade:     l.Quantidade,
			PrecoUnitario:  l.PrecoUnitario,
			Total:          l.Total,
		})
		resp.Total = resp.Total.Add(l.Total)
		mes := l.Data.Format("2006-01")
		porMes[mes] = porMes[mes].Add(l.Total)
		porFornecedor[l.Fornecedor] = porFornecedor[l.Fornecedor].Add(l.Total)
		porCategoria[l.Categoria] = porCategoria[l.Categoria].Add(l.Total)
	}

	resp.PorMes = totaisOrdenados(porMes)
	resp.PorFornecedor = totaisOrdenados(porFornecedor)
	resp.PorCategoria = totaisOrdenados(porCategoria)
	return resp, nil
}

func totaisOrdenados(m map[string]decimal.Decimal) []dto.TotalPorChave {
	chaves := make([]string, 0, len(m))
	for k := range m {
		chaves = append(chaves, k)
	}
	sort.Strings(chaves)
	out := make([]dto.TotalPorChave, 0, len(chaves))
	for _, k := range chaves {
		out = append(out, dto.TotalPorChave{Chave: k, Total: m[k]})
	}
	return out
}
