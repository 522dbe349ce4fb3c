package auditoria

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lucashm/pousada-ops-api/internal/application/dto"
	"github.com/lucashm/pousada-ops-api/internal/application/oplock"
	"github.com/lucashm/pousada-ops-api/internal/application/ports"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/tabular"
	"github.com/lucashm/pousada-ops-api/pkg/logger"
)

// Config parâmetros da auditoria noturna, vindos da configuração.
type Config struct {
	SistemaPrimario string
	TagNiara        string
	TagBee2Pay      string
	Origens         []string
}

// ImportUseCase as três importações da auditoria noturna: o relatório primário
// do motor de reservas cria o dia; gateway e processador de canal anotam
// pagamentos sobre os blocos existentes.
type ImportUseCase struct {
	tx     ports.TxRunner
	lock   *oplock.Lock
	dedupe *Deduper
	cfg    Config
	log    *logger.Logger
}

// NewImportUseCase constrói o caso de uso.
func NewImportUseCase(tx ports.TxRunner, lock *oplock.Lock, dedupe *Deduper, cfg Config, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{tx: tx, lock: lock, dedupe: dedupe, cfg: cfg, log: log}
}

func (uc *ImportUseCase) vocabulario() auditoria.Vocabulario {
	return auditoria.Vocabulario{Origens: uc.cfg.Origens}
}

// ImportarOmnibees processa o relatório primário: agrupa as linhas em
// reservas e cria sempre um dia de auditoria novo; dias repetidos ganham
// rótulo desambiguado.
func (uc *ImportUseCase) ImportarOmnibees(ctx context.Context, in dto.ImportarGridRequest) (*dto.ImportarOmnibeesResponse, error) {
	inicio := time.Now()
	if err := uc.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer uc.lock.Release()

	sig := Assinatura(in.Arquivo, in.Checksum, in.Tamanho, in.Modificado)
	if err := uc.dedupe.Begin(sig, entity.ImportacaoAudit); err != nil {
		return nil, err
	}

	resp, err := uc.importarOmnibees(ctx, in, inicio)
	if err != nil {
		_ = uc.dedupe.Abort(sig)
		return nil, err
	}
	if err := uc.dedupe.Finalize(sig); err != nil {
		return nil, err
	}
	return resp, nil
}

func (uc *ImportUseCase) importarOmnibees(ctx context.Context, in dto.ImportarGridRequest, inicio time.Time) (*dto.ImportarOmnibeesResponse, error) {
	res, err := tabular.Parse(tabular.Grid(in.Grid), SchemaOmnibees())
	if err != nil {
		return nil, err
	}
	linhas := LinhasReserva(res)
	if len(linhas) == 0 {
		return nil, fmt.Errorf("relatório sem reservas: %w", domain.ErrInvalidInput)
	}

	reservas := auditoria.AgruparReservas(linhas, uc.vocabulario())
	data := auditoria.InferirDataAuditoria(linhas)
	if data == nil {
		hoje := tabular.DateOnly(time.Now())
		data = &hoje
	}

	now := time.Now()
	var resp dto.ImportarOmnibeesResponse
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		existentes, err := r.Auditoria.ListRotulosComPrefixo(data.Format("02/01/2006"))
		if err != nil {
			return err
		}
		rotulo := RotuloParaDia(*data, existentes, now)

		dia := &entity.AuditoriaDia{
			ID:        uuid.New().String(),
			Data:      *data,
			Rotulo:    rotulo,
			CreatedAt: now,
		}
		blocos := make([]*entity.AuditoriaBloco, 0, len(reservas))
		for _, rv := range reservas {
			blocos = append(blocos, &entity.AuditoriaBloco{
				ID:          uuid.New().String(),
				DiaID:       dia.ID,
				Sistema:     uc.cfg.SistemaPrimario,
				Localizador: rv.Localizador,
				Titular:     rv.Titular,
				Status:      rv.Status,
				Origem:      rv.Origem,
				CheckIn:     rv.CheckIn,
				CheckOut:    rv.CheckOut,
				Quartos:     rv.Quartos,
				Tarifarios:  rv.Tarifarios,
				Aptos:       rv.Aptos,
				Total:       rv.Total,
				UpdatedAt:   now,
			})
		}
		if err := r.Auditoria.CreateDia(dia, blocos); err != nil {
			return err
		}
		if err := r.Auditoria.CreateRegistroImportacao(&entity.RegistroImportacao{
			ID:             uuid.New().String(),
			Tipo:           entity.ImportacaoAudit,
			Arquivo:        in.Arquivo,
			Correspondidos: len(reservas),
			Duracao:        time.Since(inicio),
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		resp = dto.ImportarOmnibeesResponse{DiaID: dia.ID, Rotulo: rotulo, Reservas: len(reservas)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("rotulo", resp.Rotulo).Str("usuario", in.Usuario).
		Int("reservas", resp.Reservas).
		Dur("duracao", time.Since(inicio)).Msg("auditoria do dia criada")
	return &resp, nil
}

// ImportarNiara aplica as confirmações do gateway de pagamento sobre o dia de
// auditoria inferido do relatório. Localizadores sem bloco primário acumulam
// no diagnóstico de não encontrados.
func (uc *ImportUseCase) ImportarNiara(ctx context.Context, in dto.ImportarGridRequest) (*dto.ImportarPagamentosResponse, error) {
	return uc.importarPagamentos(ctx, in, entity.ImportacaoNiara)
}

// ImportarBee2Pay aplica as transações do processador de canal, respeitando a
// precedência do gateway e as exclusões de tarifário.
func (uc *ImportUseCase) ImportarBee2Pay(ctx context.Context, in dto.ImportarGridRequest) (*dto.ImportarPagamentosResponse, error) {
	return uc.importarPagamentos(ctx, in, entity.ImportacaoBee2Pay)
}

func (uc *ImportUseCase) importarPagamentos(ctx context.Context, in dto.ImportarGridRequest, tipo string) (*dto.ImportarPagamentosResponse, error) {
	inicio := time.Now()
	if err := uc.lock.Acquire(ctx); err != nil {
		return nil, err
	}
	defer uc.lock.Release()

	sig := Assinatura(in.Arquivo, in.Checksum, in.Tamanho, in.Modificado)
	if err := uc.dedupe.Begin(sig, tipo); err != nil {
		return nil, err
	}

	resp, err := uc.aplicarPagamentos(ctx, in, tipo, inicio)
	if err != nil {
		_ = uc.dedupe.Abort(sig)
		return nil, err
	}
	if err := uc.dedupe.Finalize(sig); err != nil {
		return nil, err
	}
	return resp, nil
}

func (uc *ImportUseCase) aplicarPagamentos(ctx context.Context, in dto.ImportarGridRequest, tipo string, inicio time.Time) (*dto.ImportarPagamentosResponse, error) {
	grid := tabular.Grid(in.Grid)

	var registros []entity.RegistroPagamento
	var datas []*time.Time
	var data *time.Time
	if tipo == entity.ImportacaoBee2Pay {
		res, err := tabular.Parse(grid, SchemaBee2Pay())
		if err != nil {
			return nil, err
		}
		registros, datas = RegistrosBee2Pay(res)
		// O cabeçalho "Período Listado" tem precedência sobre a inferência.
		data = DataPeriodoListado(grid)
	} else {
		res, err := tabular.Parse(grid, SchemaNiara())
		if err != nil {
			return nil, err
		}
		registros, datas = RegistrosNiara(res)
	}
	if len(registros) == 0 {
		return nil, fmt.Errorf("relatório sem pagamentos: %w", domain.ErrInvalidInput)
	}
	if data == nil {
		data = auditoria.InferirData(datas)
	}
	if data == nil {
		return nil, fmt.Errorf("relatório sem data inferível: %w", domain.ErrInvalidInput)
	}

	var resp dto.ImportarPagamentosResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		rotulos, err := r.Auditoria.ListRotulosComPrefixo(data.Format("02/01/2006"))
		if err != nil {
			return err
		}
		rotulo := EncontrarRotulo(*data, rotulos)
		if rotulo == "" {
			return fmt.Errorf("auditoria de %s não existe: %w", data.Format("02/01/2006"), domain.ErrNotFound)
		}
		dia, err := r.Auditoria.GetDiaByRotulo(rotulo)
		if err != nil {
			return err
		}
		if dia == nil {
			return fmt.Errorf("auditoria de %s não existe: %w", data.Format("02/01/2006"), domain.ErrNotFound)
		}

		blocos, err := r.Auditoria.ListBlocos(dia.ID)
		if err != nil {
			return err
		}
		idx := auditoria.IndexarBlocos(blocos, uc.cfg.SistemaPrimario)

		var res auditoria.ResultadoMatch
		if tipo == entity.ImportacaoBee2Pay {
			res = auditoria.AplicarBee2Pay(idx, registros, uc.cfg.TagBee2Pay, uc.cfg.TagNiara)
		} else {
			res = auditoria.AplicarPagamentos(idx, registros, uc.cfg.TagNiara)
		}

		now := time.Now()
		for _, b := range res.Atualizados {
			b.UpdatedAt = now
		}
		if err := r.Auditoria.UpdateBlocos(res.Atualizados); err != nil {
			return err
		}
		if err := r.Auditoria.CreateRegistroImportacao(&entity.RegistroImportacao{
			ID:             uuid.New().String(),
			Tipo:           tipo,
			Arquivo:        in.Arquivo,
			Correspondidos: res.Correspondidos,
			NaoEncontrados: res.NaoEncontrados,
			Duracao:        time.Since(inicio),
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		resp = dto.ImportarPagamentosResponse{
			Rotulo:          rotulo,
			Correspondidos:  res.Correspondidos,
			Ignorados:       res.Ignorados,
			MarcadosNaoPago: res.MarcadosNaoPago,
			NaoEncontrados:  res.NaoEncontrados,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("tipo", tipo).Str("rotulo", resp.Rotulo).Str("usuario", in.Usuario).
		Int("correspondidos", resp.Correspondidos).Int("marcados_nao_pago", resp.MarcadosNaoPago).
		Int("nao_encontrados", len(resp.NaoEncontrados)).
		Dur("duracao", time.Since(inicio)).Msg("importação de pagamentos aplicada")
	return &resp, nil
}

// ConsultarDia devolve um dia de auditoria com os seus blocos, pelo rótulo.
func (uc *ImportUseCase) ConsultarDia(ctx context.Context, rotulo string) (*dto.AuditoriaDiaResponse, error) {
	var resp *dto.AuditoriaDiaResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		dia, err := r.Auditoria.GetDiaByRotulo(rotulo)
		if err != nil {
			return err
		}
		if dia == nil {
			return domain.ErrNotFound
		}
		blocos, err := r.Auditoria.ListBlocos(dia.ID)
		if err != nil {
			return err
		}

		resp = &dto.AuditoriaDiaResponse{
			Rotulo: dia.Rotulo,
			Data:   dia.Data.Format("02/01/2006"),
		}
		for _, b := range blocos {
			resp.Blocos = append(resp.Blocos, dto.AuditoriaBlocoResponse{
				Localizador: b.Localizador,
				Titular:     b.Titular,
				Status:      b.Status,
				Origem:      b.Origem,
				CheckIn:     formatarData(b.CheckIn),
				CheckOut:    formatarData(b.CheckOut),
				Quartos:     b.Quartos,
				Tarifarios:  b.Tarifarios,
				Aptos:       b.Aptos,
				Total:       b.Total,
				Pagamento:   b.Pagamento,
				Observacoes: b.Observacoes,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func formatarData(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
