package estoque

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/application/oplock"
	"github.com/lucashm/pousada-ops-api/internal/application/ports"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/estoque"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
	"github.com/lucashm/pousada-ops-api/internal/tabular"
	"github.com/lucashm/pousada-ops-api/pkg/logger"
)

// InventarioUseCase contagens físicas e recomputação de consumo.
type InventarioUseCase struct {
	tx   ports.TxRunner
	lock *oplock.Lock
	log  *logger.Logger
}

// NewInventarioUseCase constrói o caso de uso.
func NewInventarioUseCase(tx ports.TxRunner, lock *oplock.Lock, log *logger.Logger) *InventarioUseCase {
	return &InventarioUseCase{tx: tx, lock: lock, log: log}
}

// Registrar persiste uma contagem física: compara cada linha contada com o
// estoque derivado do ledger, grava cabeçalho e itens, apenda os ajustes por
// último e recomputa o consumo desta contagem. A contagem anterior é a de
// maior data estritamente menor; a primeira de sempre tem consumo 0.
func (uc *InventarioUseCase) Registrar(ctx context.Context, in dto.RegistrarInventarioRequest) (*dto.RegistrarInventarioResponse, error) {
	data := tabular.CoerceDate(in.Data)
	if data == nil || strings.TrimSpace(in.Responsavel) == "" || len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	linhas := make([]estoque.LinhaContagem, 0, len(in.Itens))
	for _, item := range in.Itens {
		if item.Produto == "" || item.Contado.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		linhas = append(linhas, estoque.LinhaContagem{
			Produto: item.Produto,
			Unidade: item.Unidade,
			Contado: item.Contado,
		})
	}

	if err := uc.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer uc.lock.Release()

	now := time.Now()
	dataContagem := tabular.DateOnly(*data)
	invID := fmt.Sprintf("INV_%s_%s", dataContagem.Format("20060102"), now.Format("150405"))

	var resp dto.RegistrarInventarioResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		movs, err := r.Movimentos.ListAll()
		if err != nil {
			return err
		}
		anterior, err := r.Inventarios.GetAnterior(dataContagem)
		if err != nil {
			return err
		}

		rec := estoque.ReconcilarContagem(movs, dataContagem, linhas)

		inv := &entity.Inventario{
			ID:          invID,
			Data:        dataContagem,
			Responsavel: in.Responsavel,
			Observacoes: in.Observacoes,
			CreatedAt:   now,
		}
		if anterior != nil {
			inv.AnteriorID = anterior.ID
		}
		itens := make([]entity.InventarioItem, len(rec.Itens))
		for i, item := range rec.Itens {
			item.ID = uuid.New().String()
			item.InventarioID = invID
			itens[i] = item
		}
		if err := r.Inventarios.Create(inv, itens); err != nil {
			return err
		}

		// Ajustes por último, depois de cabeçalho e itens validados e gravados.
		ajustes := make([]entity.Movimento, len(rec.Ajustes))
		for i, aj := range rec.Ajustes {
			aj.ID = uuid.New().String()
			aj.CriadoEm = now
			aj.Referencia = invID
			aj.Observacao = fmt.Sprintf("Ajuste de inventário %s", invID)
			ajustes[i] = aj
		}
		if err := r.Movimentos.Append(ajustes); err != nil {
			return err
		}

		if _, err := recomputarConsumoDaContagem(r, inv, itens, movs); err != nil {
			return err
		}

		resp.ID = invID
		resp.Ajustes = len(ajustes)
		for _, item := range itens {
			resp.Itens = append(resp.Itens, dto.InventarioItemResponse{
				Produto:        item.Produto,
				Unidade:        item.Unidade,
				EstoqueSistema: item.EstoqueSistema,
				Contado:        item.Contado,
				Diferenca:      item.Diferenca,
				AjusteGerado:   item.AjusteGerado,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("inventario", invID).Int("itens", len(in.Itens)).
		Int("ajustes", resp.Ajustes).Msg("contagem de inventário registrada")
	return &resp, nil
}

// RecalcularConsumo recomputa o consumo de uma contagem específica, ou de
// todas em ordem cronológica quando o id vem vazio. As linhas antigas da
// contagem são apagadas e reescritas como unidade.
func (uc *InventarioUseCase) RecalcularConsumo(ctx context.Context, in dto.RecalcularConsumoRequest) (*dto.RecalcularConsumoResponse, error) {
	if err := uc.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer uc.lock.Release()

	var resp dto.RecalcularConsumoResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		movs, err := r.Movimentos.ListAll()
		if err != nil {
			return err
		}

		var alvos []*entity.Inventario
		if in.InventarioID != "" {
			inv, err := r.Inventarios.GetByID(in.InventarioID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			alvos = []*entity.Inventario{inv}
		} else {
			alvos, err = r.Inventarios.ListCronologico()
			if err != nil {
				return err
			}
		}

		for _, inv := range alvos {
			itens, err := r.Inventarios.GetItens(inv.ID)
			if err != nil {
				return err
			}
			n, err := recomputarConsumoDaContagem(r, inv, itens, movs)
			if err != nil {
				return err
			}
			resp.Inventarios++
			resp.Linhas += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int("inventarios", resp.Inventarios).Int("linhas", resp.Linhas).
		Msg("consumo recomputado")
	return &resp, nil
}

// ConsultarConsumo devolve as linhas de consumo apuradas de uma contagem.
func (uc *InventarioUseCase) ConsultarConsumo(ctx context.Context, inventarioID string) (*dto.ConsumoInventarioResponse, error) {
	var resp *dto.ConsumoInventarioResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		inv, err := r.Inventarios.GetByID(inventarioID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		registros, err := r.Consumos.ListByInventario(inv.ID)
		if err != nil {
			return err
		}

		resp = &dto.ConsumoInventarioResponse{
			InventarioID: inv.ID,
			Data:         inv.Data.Format("02/01/2006"),
			Responsavel:  inv.Responsavel,
		}
		for _, reg := range registros {
			resp.Linhas = append(resp.Linhas, dto.ConsumoLinhaResponse{
				Produto:    reg.Produto,
				Quantidade: reg.Quantidade,
				CustoMedio: reg.CustoMedio,
				ValorTotal: reg.ValorTotal,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// recomputarConsumoDaContagem apaga e reescreve as linhas de consumo de uma
// contagem a partir do ledger e da contagem anterior.
func recomputarConsumoDaContagem(r ports.TxRepos, inv *entity.Inventario, itens []entity.InventarioItem, movs []entity.Movimento) (int, error) {
	anterior, err := contagemAnterior(r.Inventarios, inv)
	if err != nil {
		return 0, err
	}

	linhas := estoque.ConsumoDaContagem(movs, anterior, inv.Data, itens)
	registros := make([]entity.Consumo, 0, len(linhas))
	for _, l := range linhas {
		registros = append(registros, entity.Consumo{
			ID:           uuid.New().String(),
			InventarioID: inv.ID,
			Produto:      l.Produto,
			Data:         inv.Data,
			Quantidade:   l.Quantidade,
			CustoMedio:   l.CustoMedio,
			ValorTotal:   l.ValorTotal,
		})
	}

	if err := r.Consumos.DeleteByInventario(inv.ID); err != nil {
		return 0, err
	}
	if err := r.Consumos.CreateBatch(registros); err != nil {
		return 0, err
	}
	return len(registros), nil
}

func contagemAnterior(repo repository.InventarioRepository, inv *entity.Inventario) (*estoque.ContagemAnterior, error) {
	prev, err := repo.GetAnterior(inv.Data)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, nil
	}
	itens, err := repo.GetItens(prev.ID)
	if err != nil {
		return nil, err
	}
	contado := make(map[string]decimal.Decimal, len(itens))
	for _, item := range itens {
		contado[item.Produto] = item.Contado
	}
	return &estoque.ContagemAnterior{Data: prev.Data, Contado: contado}, nil
}
