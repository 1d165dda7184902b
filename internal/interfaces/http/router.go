package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/shop-query-api/internal/application/usecase"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MemberUC *usecase.MemberQueryUseCase
	OrderUC  *usecase.OrderQueryUseCase
	Log      *logger.Logger
}

// NewApp crea la app fiber con timeouts, recover, request id y el manejador de errores común.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestID(log))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// Router registra las rutas de la API (solo lectura).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	members := api.Group("/members")
	memberHandler := NewMemberHandler(deps.MemberUC, deps.Log)
	members.Get("/", memberHandler.Search)
	members.Get("/page", memberHandler.Page)
	members.Get("/slice", memberHandler.Slice)
	members.Get("/by-username/:username", memberHandler.ByUsername)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Log)
	orders.Get("/", orderHandler.List)
	orders.Get("/page", orderHandler.Page)
}
