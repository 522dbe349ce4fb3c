package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)
var _ repository.ConsumoRepository = (*ConsumoRepo)(nil)

// InventarioRepo implementação do porto de contagens físicas sobre PostgreSQL.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository constrói o adaptador de contagens.
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// Create persiste o cabeçalho da contagem com os itens.
func (r *InventarioRepo) Create(inv *entity.Inventario, itens []entity.InventarioItem) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventarios (id, data, responsavel, observacoes, anterior_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		inv.ID, inv.Data, inv.Responsavel, inv.Observacoes, inv.AnteriorID, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventario: %w", err)
	}
	for _, item := range itens {
		_, err := r.q.Exec(ctx, `
			INSERT INTO inventario_itens (id, inventario_id, produto, unidade, estoque_sistema, contado, diferenca, ajuste_gerado)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.InventarioID, item.Produto, item.Unidade,
			item.EstoqueSistema, item.Contado, item.Diferenca, item.AjusteGerado,
		)
		if err != nil {
			return fmt.Errorf("insert inventario item: %w", err)
		}
	}
	return nil
}

// GetByID obtém o cabeçalho de uma contagem.
func (r *InventarioRepo) GetByID(id string) (*entity.Inventario, error) {
	return r.get(`SELECT id, data, responsavel, observacoes, COALESCE(anterior_id, ''), created_at
		FROM inventarios WHERE id = $1`, id)
}

// GetItens devolve os itens de uma contagem.
func (r *InventarioRepo) GetItens(inventarioID string) ([]entity.InventarioItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, inventario_id, produto, unidade, estoque_sistema, contado, diferenca, ajuste_gerado
		FROM inventario_itens WHERE inventario_id = $1 ORDER BY produto`, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("list inventario itens: %w", err)
	}
	defer rows.Close()
	var out []entity.InventarioItem
	for rows.Next() {
		var item entity.InventarioItem
		if err := rows.Scan(&item.ID, &item.InventarioID, &item.Produto, &item.Unidade,
			&item.EstoqueSistema, &item.Contado, &item.Diferenca, &item.AjusteGerado); err != nil {
			return nil, fmt.Errorf("scan inventario item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetAnterior devolve a contagem com a maior data estritamente menor, ou nil.
func (r *InventarioRepo) GetAnterior(data time.Time) (*entity.Inventario, error) {
	return r.get(`SELECT id, data, responsavel, observacoes, COALESCE(anterior_id, ''), created_at
		FROM inventarios WHERE data < $1 ORDER BY data DESC, created_at DESC LIMIT 1`, data)
}

// ListCronologico devolve todas as contagens por data ascendente.
func (r *InventarioRepo) ListCronologico() ([]*entity.Inventario, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, data, responsavel, observacoes, COALESCE(anterior_id, ''), created_at
		FROM inventarios ORDER BY data, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list inventarios: %w", err)
	}
	defer rows.Close()
	var out []*entity.Inventario
	for rows.Next() {
		var inv entity.Inventario
		if err := rows.Scan(&inv.ID, &inv.Data, &inv.Responsavel, &inv.Observacoes, &inv.AnteriorID, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

func (r *InventarioRepo) get(query string, args ...any) (*entity.Inventario, error) {
	var inv entity.Inventario
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.Data, &inv.Responsavel, &inv.Observacoes, &inv.AnteriorID, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &inv, nil
}

// ConsumoRepo implementação do porto dos registros de consumo derivados.
type ConsumoRepo struct {
	q Querier
}

// NewConsumoRepository constrói o adaptador de consumos.
func NewConsumoRepository(q Querier) *ConsumoRepo {
	return &ConsumoRepo{q: q}
}

// DeleteByInventario apaga as linhas de consumo de uma contagem.
func (r *ConsumoRepo) DeleteByInventario(inventarioID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM consumos WHERE inventario_id = $1`, inventarioID)
	if err != nil {
		return fmt.Errorf("delete consumos: %w", err)
	}
	return nil
}

// CreateBatch persiste as linhas de consumo de uma contagem.
func (r *ConsumoRepo) CreateBatch(registros []entity.Consumo) error {
	ctx := context.Background()
	for _, c := range registros {
		_, err := r.q.Exec(ctx, `
			INSERT INTO consumos (id, inventario_id, produto, data, quantidade, custo_medio, valor_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.InventarioID, c.Produto, c.Data, c.Quantidade, c.CustoMedio, c.ValorTotal,
		)
		if err != nil {
			return fmt.Errorf("insert consumo: %w", err)
		}
	}
	return nil
}

// ListByInventario devolve as linhas de consumo de uma contagem.
func (r *ConsumoRepo) ListByInventario(inventarioID string) ([]entity.Consumo, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, inventario_id, produto, data, quantidade, custo_medio, valor_total
		FROM consumos WHERE inventario_id = $1 ORDER BY produto`, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("list consumos: %w", err)
	}
	defer rows.Close()
	var out []entity.Consumo
	for rows.Next() {
		var c entity.Consumo
		if err := rows.Scan(&c.ID, &c.InventarioID, &c.Produto, &c.Data, &c.Quantidade, &c.CustoMedio, &c.ValorTotal); err != nil {
			return nil, fmt.Errorf("scan consumo: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
