package repository

import "github.com/lucashm/pousada-ops-api/internal/domain/entity"

// AuditoriaRepository define o porto de persistência dos dias de auditoria,
// seus blocos de reserva e o log de importações.
type AuditoriaRepository interface {
	CreateDia(dia *entity.AuditoriaDia, blocos []*entity.AuditoriaBloco) error
	GetDiaByRotulo(rotulo string) (*entity.AuditoriaDia, error)
	// ListRotulosComPrefixo devolve os rótulos existentes que começam pelo
	// prefixo dado, para desambiguação " (n)" e lookup por data.
	ListRotulosComPrefixo(prefixo string) ([]string, error)
	ListBlocos(diaID string) ([]*entity.AuditoriaBloco, error)
	// UpdateBlocos grava apenas a área mutável (pagamento e observações).
	UpdateBlocos(blocos []*entity.AuditoriaBloco) error
	CreateRegistroImportacao(reg *entity.RegistroImportacao) error
}

// ImportHistoryRepository define o porto do histórico de deduplicação de
// importações, um pequeno estado chave-valor persistente.
type ImportHistoryRepository interface {
	Get(assinatura string) (*ImportEntry, error)
	Put(entry *ImportEntry) error
	Delete(assinatura string) error
	DeleteOlderThan(cutoffUnix int64) error
	Count() (int, error)
	DeleteOldest(n int) error
}

// ImportEntry é uma entrada do histórico de deduplicação.
type ImportEntry struct {
	Assinatura string
	Tipo       string // AUDIT, NIARA, BEE2PAY, NOTA, INVENTARIO
	Iniciado   int64  // unix seconds
	Finalizado bool
}
