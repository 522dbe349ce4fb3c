package auditoria_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauditoria "github.com/lucashm/pousada-ops-api/internal/application/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/domain"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
	"github.com/lucashm/pousada-ops-api/internal/domain/repository"
)

func TestAssinatura(t *testing.T) {
	assert.Equal(t, "abc|100|1700000000", appauditoria.Assinatura("f.xlsx", "abc", 100, 1700000000))
	assert.Equal(t, "f.xlsx", appauditoria.Assinatura("f.xlsx", "", 100, 1700000000),
		"sem checksum vale o identificador do arquivo")
}

func TestDeduper_JanelaBloqueiaRepeticao(t *testing.T) {
	s := newMemAudit()
	d := appauditoria.NewDeduper(historyRepo{s}, 30*time.Minute, 50)

	require.NoError(t, d.Begin("sig-1", entity.ImportacaoAudit))
	err := d.Begin("sig-1", entity.ImportacaoAudit)
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "mesma assinatura dentro da janela deve bloquear")

	require.NoError(t, d.Begin("sig-2", entity.ImportacaoAudit), "assinatura distinta passa")
}

func TestDeduper_AbortLiberaRetentativa(t *testing.T) {
	s := newMemAudit()
	d := appauditoria.NewDeduper(historyRepo{s}, 30*time.Minute, 50)

	require.NoError(t, d.Begin("sig-1", entity.ImportacaoNiara))
	require.NoError(t, d.Abort("sig-1"))
	assert.NoError(t, d.Begin("sig-1", entity.ImportacaoNiara), "abort permite reimportar de imediato")
}

func TestDeduper_FinalizeMarcaConcluida(t *testing.T) {
	s := newMemAudit()
	d := appauditoria.NewDeduper(historyRepo{s}, 30*time.Minute, 50)

	require.NoError(t, d.Begin("sig-1", entity.ImportacaoBee2Pay))
	require.NoError(t, d.Finalize("sig-1"))
	entry := s.historico["sig-1"]
	require.NotNil(t, entry)
	assert.True(t, entry.Finalizado)
}

func TestDeduper_PodaEntradasVelhas(t *testing.T) {
	s := newMemAudit()
	d := appauditoria.NewDeduper(historyRepo{s}, 30*time.Minute, 50)

	// Entrada com mais de 6× a janela é podada na próxima passagem.
	velha := time.Now().Add(-4 * time.Hour).Unix()
	s.historico["velha"] = &repository.ImportEntry{Assinatura: "velha", Iniciado: velha}
	s.historicoN = append(s.historicoN, "velha")

	require.NoError(t, d.Begin("nova", entity.ImportacaoAudit))
	assert.Nil(t, s.historico["velha"], "entrada fora da retenção deve sumir")
	assert.NoError(t, d.Begin("velha", entity.ImportacaoAudit))
}

func TestDeduper_LimiteDoHistorico(t *testing.T) {
	s := newMemAudit()
	d := appauditoria.NewDeduper(historyRepo{s}, 30*time.Minute, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Begin(fmt.Sprintf("sig-%d", i), entity.ImportacaoAudit))
	}
	require.NoError(t, d.Begin("sig-3", entity.ImportacaoAudit))

	assert.Equal(t, 3, len(s.historico), "histórico não cresce além do limite")
	assert.Nil(t, s.historico["sig-0"], "a entrada mais antiga é descartada primeiro")
	assert.NotNil(t, s.historico["sig-3"])
}
