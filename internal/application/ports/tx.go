package ports

import (
	"context"

	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

// TxRepos agrupa os repositórios atados a uma mesma transação.
type TxRepos struct {
	Produtos    repository.ProdutoRepository
	Notas       repository.NotaRepository
	Movimentos  repository.MovimentoRepository
	Inventarios repository.InventarioRepository
	Consumos    repository.ConsumoRepository
	Auditoria   repository.AuditoriaRepository
}

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade dos casos de uso que
// escrevem em mais de uma tabela.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
