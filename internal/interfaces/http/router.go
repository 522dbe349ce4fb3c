package http

import (
	"github.com/gofiber/fiber/v2"

	appauditoria "github.com/lucashm/pousada-ops-api/internal/application/auditoria"
	"github.com/lucashm/pousada-ops-api/internal/application/auth"
	appestoque "github.com/lucashm/pousada-ops-api/internal/application/estoque"
	"github.com/lucashm/pousada-ops-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProdutoUC    *appestoque.ProdutoUseCase
	NotaUC       *appestoque.NotaUseCase
	InventarioUC *appestoque.InventarioUseCase
	PainelUC     *appestoque.PainelUseCase
	AuditoriaUC  *appauditoria.ImportUseCase
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Estoque
	estoque := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.ProdutoUC, deps.NotaUC, deps.InventarioUC)
	estoque.Post("/produtos", estoqueHandler.CriarProduto)
	estoque.Get("/produtos", estoqueHandler.ListarProdutos)
	estoque.Get("/atual", estoqueHandler.RelatorioEstoque)
	estoque.Get("/movimentos", estoqueHandler.ListarMovimentos)
	estoque.Post("/notas", estoqueHandler.RegistrarNota)
	estoque.Post("/inventarios", estoqueHandler.RegistrarInventario)
	estoque.Get("/inventarios/:id/consumo", estoqueHandler.ConsultarConsumo)
	// Recomputação reescreve dados derivados; só admin.
	estoque.Post("/consumo/recalcular", RequireRole(entity.RoleAdmin), estoqueHandler.RecalcularConsumo)

	// Painel de gastos
	painel := protected.Group("/painel")
	painelHandler := NewPainelHandler(deps.PainelUC)
	painel.Get("/gastos", painelHandler.Gastos)

	// Auditoria noturna
	auditoria := protected.Group("/auditoria")
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	auditoria.Post("/importar/omnibees", auditoriaHandler.ImportarOmnibees)
	auditoria.Post("/importar/niara", auditoriaHandler.ImportarNiara)
	auditoria.Post("/importar/bee2pay", auditoriaHandler.ImportarBee2Pay)
	auditoria.Get("/dias", auditoriaHandler.ConsultarDia)
}
