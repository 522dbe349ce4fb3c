package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementação do porto da auditoria noturna sobre PostgreSQL.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository constrói o adaptador da auditoria.
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// CreateDia persiste o dia de auditoria com os blocos. O rótulo é único.
func (r *AuditoriaRepo) CreateDia(dia *entity.AuditoriaDia, blocos []*entity.AuditoriaBloco) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO auditoria_dias (id, data, rotulo, created_at)
		VALUES ($1, $2, $3, $4)`,
		dia.ID, dia.Data, dia.Rotulo, dia.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert auditoria dia: %w", err)
	}
	for i, b := range blocos {
		_, err := r.q.Exec(ctx, `
			INSERT INTO auditoria_blocos (id, dia_id, posicao, sistema, localizador, titular, status, origem, checkin, checkout, quartos, tarifarios, aptos, total, pagamento, observacoes, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			b.ID, b.DiaID, i, b.Sistema, b.Localizador, b.Titular, b.Status, b.Origem,
			b.CheckIn, b.CheckOut, b.Quartos, b.Tarifarios, b.Aptos, b.Total,
			b.Pagamento, b.Observacoes, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert auditoria bloco: %w", err)
		}
	}
	return nil
}

// GetDiaByRotulo obtém um dia de auditoria pelo rótulo, ou nil.
func (r *AuditoriaRepo) GetDiaByRotulo(rotulo string) (*entity.AuditoriaDia, error) {
	var dia entity.AuditoriaDia
	err := r.q.QueryRow(context.Background(), `
		SELECT id, data, rotulo, created_at FROM auditoria_dias WHERE rotulo = $1`, rotulo,
	).Scan(&dia.ID, &dia.Data, &dia.Rotulo, &dia.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auditoria dia: %w", err)
	}
	return &dia, nil
}

// ListRotulosComPrefixo devolve os rótulos que começam pelo prefixo, ordenados.
func (r *AuditoriaRepo) ListRotulosComPrefixo(prefixo string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT rotulo FROM auditoria_dias WHERE rotulo LIKE $1 || '%' ORDER BY rotulo`, prefixo)
	if err != nil {
		return nil, fmt.Errorf("list rotulos: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var rotulo string
		if err := rows.Scan(&rotulo); err != nil {
			return nil, fmt.Errorf("scan rotulo: %w", err)
		}
		out = append(out, rotulo)
	}
	return out, rows.Err()
}

// ListBlocos devolve os blocos de um dia na posição de criação, que preserva a
// ordenação por check-in do agrupamento.
func (r *AuditoriaRepo) ListBlocos(diaID string) ([]*entity.AuditoriaBloco, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, dia_id, sistema, localizador, titular, status, origem, checkin, checkout, quartos, tarifarios, aptos, total, pagamento, observacoes, updated_at
		FROM auditoria_blocos WHERE dia_id = $1 ORDER BY posicao`, diaID)
	if err != nil {
		return nil, fmt.Errorf("list blocos: %w", err)
	}
	defer rows.Close()
	var out []*entity.AuditoriaBloco
	for rows.Next() {
		var b entity.AuditoriaBloco
		if err := rows.Scan(&b.ID, &b.DiaID, &b.Sistema, &b.Localizador, &b.Titular, &b.Status,
			&b.Origem, &b.CheckIn, &b.CheckOut, &b.Quartos, &b.Tarifarios, &b.Aptos, &b.Total,
			&b.Pagamento, &b.Observacoes, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bloco: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// UpdateBlocos grava a área mutável (pagamento e observações) dos blocos.
func (r *AuditoriaRepo) UpdateBlocos(blocos []*entity.AuditoriaBloco) error {
	ctx := context.Background()
	for _, b := range blocos {
		_, err := r.q.Exec(ctx, `
			UPDATE auditoria_blocos SET pagamento = $2, observacoes = $3, updated_at = $4
			WHERE id = $1`,
			b.ID, b.Pagamento, b.Observacoes, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update bloco: %w", err)
		}
	}
	return nil
}

// CreateRegistroImportacao persiste uma entrada do log de importações.
func (r *AuditoriaRepo) CreateRegistroImportacao(reg *entity.RegistroImportacao) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO registros_importacao (id, tipo, arquivo, correspondidos, nao_encontrados, duracao_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reg.ID, reg.Tipo, reg.Arquivo, reg.Correspondidos, reg.NaoEncontrados,
		reg.Duracao.Milliseconds(), reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registro importacao: %w", err)
	}
	return nil
}

var _ repository.ImportHistoryRepository = (*ImportHistoryRepo)(nil)

// ImportHistoryRepo implementação do histórico de deduplicação, um pequeno
// estado chave-valor persistente.
type ImportHistoryRepo struct {
	q Querier
}

// NewImportHistoryRepository constrói o adaptador do histórico.
func NewImportHistoryRepository(q Querier) *ImportHistoryRepo {
	return &ImportHistoryRepo{q: q}
}

// Get obtém uma entrada pela assinatura, ou nil.
func (r *ImportHistoryRepo) Get(assinatura string) (*repository.ImportEntry, error) {
	var e repository.ImportEntry
	err := r.q.QueryRow(context.Background(), `
		SELECT assinatura, tipo, iniciado, finalizado FROM import_history WHERE assinatura = $1`,
		assinatura,
	).Scan(&e.Assinatura, &e.Tipo, &e.Iniciado, &e.Finalizado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import entry: %w", err)
	}
	return &e, nil
}

// Put insere ou substitui a entrada.
func (r *ImportHistoryRepo) Put(entry *repository.ImportEntry) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO import_history (assinatura, tipo, iniciado, finalizado)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (assinatura) DO UPDATE SET tipo = $2, iniciado = $3, finalizado = $4`,
		entry.Assinatura, entry.Tipo, entry.Iniciado, entry.Finalizado,
	)
	if err != nil {
		return fmt.Errorf("put import entry: %w", err)
	}
	return nil
}

// Delete remove a entrada.
func (r *ImportHistoryRepo) Delete(assinatura string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM import_history WHERE assinatura = $1`, assinatura)
	if err != nil {
		return fmt.Errorf("delete import entry: %w", err)
	}
	return nil
}

// DeleteOlderThan poda as entradas iniciadas antes do corte.
func (r *ImportHistoryRepo) DeleteOlderThan(cutoffUnix int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM import_history WHERE iniciado < $1`, cutoffUnix)
	if err != nil {
		return fmt.Errorf("prune import history: %w", err)
	}
	return nil
}

// Count devolve o total de entradas.
func (r *ImportHistoryRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM import_history`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count import history: %w", err)
	}
	return n, nil
}

// DeleteOldest remove as n entradas mais antigas.
func (r *ImportHistoryRepo) DeleteOldest(n int) error {
	_, err := r.q.Exec(context.Background(), `
		DELETE FROM import_history WHERE assinatura IN (
			SELECT assinatura FROM import_history ORDER BY iniciado LIMIT $1)`, n)
	if err != nil {
		return fmt.Errorf("delete oldest import entries: %w", err)
	}
	return nil
}
