package estoque

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/application/oplock"
	"github.com/lucashm/pousada-ops-api/internal/application/ports"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/tabular"
	"github.com/lucashm/pousada-ops-api/pkg/logger"
)

// NotaUseCase registro de notas de compra: cabeçalho, itens e os movimentos
// de entrada no ledger.
type NotaUseCase struct {
	tx          ports.TxRunner
	lock        *oplock.Lock
	formasPagto []string
	log         *logger.Logger
}

// NewNotaUseCase constrói o caso de uso.
func NewNotaUseCase(tx ports.TxRunner, lock *oplock.Lock, formasPagto []string, log *logger.Logger) *NotaUseCase {
	return &NotaUseCase{tx: tx, lock: lock, formasPagto: formasPagto, log: log}
}

// Registrar valida e persiste uma nota de compra. A chave de negócio
// (data, fornecedor, numero) duplicada é rejeitada com ErrDuplicate. Os
// movimentos do ledger são escritos por último, depois de cabeçalho e itens
// validados e gravados, para que uma falha parcial nunca deixe movimentos
// sem nota.
func (uc *NotaUseCase) Registrar(ctx context.Context, in dto.RegistrarNotaRequest) (*dto.RegistrarNotaResponse, error) {
	data := tabular.CoerceDate(in.Data)
	if data == nil || in.Fornecedor == "" || in.Numero == "" || len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FormaPagamento != "" && !contem(uc.formasPagto, in.FormaPagamento) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Itens {
		if item.Produto == "" || !item.Quantidade.IsPositive() || item.PrecoUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	if err := uc.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer uc.lock.Release()

	now := time.Now()
	notaID := fmt.Sprintf("%s_%s", now.Format("20060102150405"), in.Numero)

	nota := &entity.Nota{
		ID:             notaID,
		Data:           tabular.DateOnly(*data),
		Fornecedor:     in.Fornecedor,
		Numero:         in.Numero,
		FormaPagamento: in.FormaPagamento,
		Total:          in.Total,
		Observacoes:    in.Observacoes,
		CreatedAt:      now,
	}

	var movimentos int
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		duplicada, err := r.Notas.Exists(nota.Data, nota.Fornecedor, nota.Numero)
		if err != nil {
			return err
		}
		if duplicada {
			return domain.ErrDuplicate
		}

		itens := make([]entity.NotaItem, 0, len(in.Itens))
		movs := make([]entity.Movimento, 0, len(in.Itens))
		for _, item := range in.Itens {
			p, err := r.Produtos.GetByNome(item.Produto)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("produto %q: %w", item.Produto, domain.ErrNotFound)
			}
			if !p.Ativo {
				return fmt.Errorf("produto %q inativo: %w", item.Produto, domain.ErrInvalidInput)
			}

			total := item.Quantidade.Mul(item.PrecoUnitario)
			itens = append(itens, entity.NotaItem{
				ID:            uuid.New().String(),
				NotaID:        notaID,
				Produto:       item.Produto,
				Quantidade:    item.Quantidade,
				PrecoUnitario: item.PrecoUnitario,
				Total:         total,
			})
			movs = append(movs, entity.Movimento{
				ID:            uuid.New().String(),
				CriadoEm:      now,
				DataEfetiva:   nota.Data,
				Tipo:          entity.MovimentoEntradaCompra,
				Referencia:    notaID,
				Produto:       item.Produto,
				Quantidade:    item.Quantidade,
				CustoUnitario: item.PrecoUnitario,
				ValorTotal:    total,
				Observacao:    fmt.Sprintf("Nota %s - %s", in.Numero, in.Fornecedor),
			})
		}

		if err := r.Notas.Create(nota, itens); err != nil {
			return err
		}
		// Movimentos por último: o ledger nunca referencia uma nota inexistente.
		if err := r.Movimentos.Append(movs); err != nil {
			return err
		}
		movimentos = len(movs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("nota", notaID).Int("itens", len(in.Itens)).Msg("nota de compra registrada")
	return &dto.RegistrarNotaResponse{ID: notaID, Movimentos: movimentos}, nil
}
