package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauditoria "github.com/lucashm/pousada-ops-api/internal/application/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/application/auth"
	appestoque "github.com/lucashm/pousada-ops-api/internal/application/estoque"
	"github.com/lucashm/pousada-ops-api/internal/application/oplock"
	"github.com/lucashm/pousada-ops-api/internal/infrastructure/postgres"
	httpRouter "github.com/lucashm/pousada-ops-api/internal/interfaces/http"
	"github.com/lucashm/pousada-ops-api/pkg/config"
	"github.com/lucashm/pousada-ops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	produtoRepo := postgres.NewProdutoRepository(pool)
	notaRepo := postgres.NewNotaRepository(pool)
	movimentoRepo := postgres.NewMovimentoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	historyRepo := postgres.NewImportHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Lock único de escrita: notas, contagens e importações serializam aqui.
	lock := oplock.New(time.Duration(cfg.Estoque.LockWaitSegundos) * time.Second)
	dedupe := appauditoria.NewDeduper(historyRepo,
		time.Duration(cfg.Estoque.DedupeMinutos)*time.Minute, cfg.Estoque.DedupeMaxEntries)

	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	produtoUC := appestoque.NewProdutoUseCase(produtoRepo, movimentoRepo,
		cfg.Estoque.Categorias, cfg.Estoque.Unidades)
	notaUC := appestoque.NewNotaUseCase(txRunner, lock, cfg.Estoque.FormasPagamento, log)
	inventarioUC := appestoque.NewInventarioUseCase(txRunner, lock, log)
	painelUC := appestoque.NewPainelUseCase(notaRepo)
	auditoriaUC := appauditoria.NewImportUseCase(txRunner, lock, dedupe, appauditoria.Config{
		SistemaPrimario: cfg.Auditoria.SistemaPrimario,
		TagNiara:        cfg.Auditoria.TagNiara,
		TagBee2Pay:      cfg.Auditoria.TagBee2Pay,
		Origens:         cfg.Auditoria.Origens,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProdutoUC:    produtoUC,
		NotaUC:       notaUC,
		InventarioUC: inventarioUC,
		PainelUC:     painelUC,
		AuditoriaUC:  auditoriaUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
