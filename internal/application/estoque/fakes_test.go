package estoque_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lucashm/pousada-ops-api/internal/application/ports"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
	"github.com/lucashm/pousada-ops-api/pkg/logger"
)

// Fakes em memória dos portos de persistência, suficientes para exercitar os
// casos de uso sem banco.

type memStore struct {
	produtos    map[string]*entity.Produto
	notas       map[string]*entity.Nota
	notaItens   map[string][]entity.NotaItem
	movimentos  []entity.Movimento
	inventarios map[string]*entity.Inventario
	invItens    map[string][]entity.InventarioItem
	consumos    map[string][]entity.Consumo
}

func newMemStore() *memStore {
	return &memStore{
		produtos:    map[string]*entity.Produto{},
		notas:       map[string]*entity.Nota{},
		notaItens:   map[string][]entity.NotaItem{},
		inventarios: map[string]*entity.Inventario{},
		invItens:    map[string][]entity.InventarioItem{},
		consumos:    map[string][]entity.Consumo{},
	}
}

// txRunner fake: executa o callback direto sobre o store, sem transação real.
type txRunner struct{ s *memStore }

func (t txRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{
		Produtos:    produtoRepo{t.s},
		Notas:       notaRepo{t.s},
		Movimentos:  movimentoRepo{t.s},
		Inventarios: inventarioRepo{t.s},
		Consumos:    consumoRepo{t.s},
	})
}

type produtoRepo struct{ s *memStore }

func (r produtoRepo) Create(p *entity.Produto) error {
	r.s.produtos[p.Nome] = p
	return nil
}

func (r produtoRepo) GetByNome(nome string) (*entity.Produto, error) {
	return r.s.produtos[nome], nil
}

func (r produtoRepo) Update(p *entity.Produto) error {
	r.s.produtos[p.Nome] = p
	return nil
}

func (r produtoRepo) List(somenteAtivos bool) ([]*entity.Produto, error) {
	var nomes []string
	for nome := range r.s.produtos {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)
	var out []*entity.Produto
	for _, nome := range nomes {
		p := r.s.produtos[nome]
		if somenteAtivos && !p.Ativo {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type notaRepo struct{ s *memStore }

func (r notaRepo) Create(nota *entity.Nota, itens []entity.NotaItem) error {
	r.s.notas[nota.ID] = nota
	r.s.notaItens[nota.ID] = itens
	return nil
}

func (r notaRepo) Exists(data time.Time, fornecedor, numero string) (bool, error) {
	for _, n := range r.s.notas {
		if n.Data.Equal(data) && n.Fornecedor == fornecedor && n.Numero == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r notaRepo) GetByID(id string) (*entity.Nota, []entity.NotaItem, error) {
	return r.s.notas[id], r.s.notaItens[id], nil
}

func (r notaRepo) ListGastos(filtro repository.GastoFiltro) ([]entity.GastoLinha, error) {
	var out []entity.GastoLinha
	for id, n := range r.s.notas {
		if filtro.DataInicio != nil && n.Data.Before(*filtro.DataInicio) {
			continue
		}
		if filtro.DataFim != nil && n.Data.After(*filtro.DataFim) {
			continue
		}
		if filtro.Fornecedor != "" && !strings.EqualFold(n.Fornecedor, filtro.Fornecedor) {
			continue
		}
		if filtro.FormaPgto != "" && n.FormaPagamento != filtro.FormaPgto {
			continue
		}
		if filtro.Numero != "" && n.Numero != filtro.Numero {
			continue
		}
		for _, item := range r.s.notaItens[id] {
			categoria := ""
			if p := r.s.produtos[item.Produto]; p != nil {
				categoria = p.Categoria
			}
			if filtro.Categoria != "" && categoria != filtro.Categoria {
				continue
			}
			out = append(out, entity.GastoLinha{
				NotaID:         id,
				Data:           n.Data,
				Fornecedor:     n.Fornecedor,
				Numero:         n.Numero,
				FormaPagamento: n.FormaPagamento,
				Produto:        item.Produto,
				Categoria:      categoria,
				Quantidade:     item.Quantidade,
				PrecoUnitario:  item.PrecoUnitario,
				Total:          item.Total,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data.Before(out[j].Data) })
	return out, nil
}

type movimentoRepo struct{ s *memStore }

func (r movimentoRepo) Append(movs []entity.Movimento) error {
	base := int64(len(r.s.movimentos))
	for i, m := range movs {
		m.Ordem = base + int64(i) + 1
		r.s.movimentos = append(r.s.movimentos, m)
	}
	return nil
}

func (r movimentoRepo) ListAll() ([]entity.Movimento, error) {
	return append([]entity.Movimento{}, r.s.movimentos...), nil
}

func (r movimentoRepo) ListByProduto(produto string) ([]entity.Movimento, error) {
	var out []entity.Movimento
	for _, m := range r.s.movimentos {
		if m.Produto == produto {
			out = append(out, m)
		}
	}
	return out, nil
}

type inventarioRepo struct{ s *memStore }

func (r inventarioRepo) Create(inv *entity.Inventario, itens []entity.InventarioItem) error {
	r.s.inventarios[inv.ID] = inv
	r.s.invItens[inv.ID] = itens
	return nil
}

func (r inventarioRepo) GetByID(id string) (*entity.Inventario, error) {
	return r.s.inventarios[id], nil
}

func (r inventarioRepo) GetItens(id string) ([]entity.InventarioItem, error) {
	return r.s.invItens[id], nil
}

func (r inventarioRepo) GetAnterior(data time.Time) (*entity.Inventario, error) {
	var melhor *entity.Inventario
	for _, inv := range r.s.inventarios {
		if !inv.Data.Before(data) {
			continue
		}
		if melhor == nil || inv.Data.After(melhor.Data) {
			melhor = inv
		}
	}
	return melhor, nil
}

func (r inventarioRepo) ListCronologico() ([]*entity.Inventario, error) {
	var out []*entity.Inventario
	for _, inv := range r.s.inventarios {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data.Before(out[j].Data) })
	return out, nil
}

type consumoRepo struct{ s *memStore }

func (r consumoRepo) DeleteByInventario(id string) error {
	delete(r.s.consumos, id)
	return nil
}

func (r consumoRepo) CreateBatch(registros []entity.Consumo) error {
	for _, reg := range registros {
		r.s.consumos[reg.InventarioID] = append(r.s.consumos[reg.InventarioID], reg)
	}
	return nil
}

func (r consumoRepo) ListByInventario(id string) ([]entity.Consumo, error) {
	return r.s.consumos[id], nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}
