package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/shop-query-api/internal/application/search"
	"github.com/jhoicas/shop-query-api/internal/application/usecase"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	httpRouter "github.com/jhoicas/shop-query-api/internal/interfaces/http"
	"github.com/jhoicas/shop-query-api/pkg/config"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a base de datos")
	}
	defer st.close()

	defaultStrategy, err := query.ParseStrategy(cfg.Query.DefaultStrategy)
	if err != nil {
		log.Fatal().Err(err).Msg("estrategia por defecto")
	}
	planner := query.NewPlanner(catalog.Schema(), cfg.Query.MaxPageSize)
	searcher, err := search.New(planner, st.exec, st.tx, search.Options{
		BatchSize:       cfg.Query.BatchSize,
		ConsistentCount: cfg.Query.ConsistentCount,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de consultas")
	}

	memberUC := usecase.NewMemberQueryUseCase(searcher, cfg.Query.DefaultPageSize)
	orderUC := usecase.NewOrderQueryUseCase(searcher, defaultStrategy, cfg.Query.DefaultPageSize)

	app := httpRouter.NewApp(cfg.App.Name, log)
	httpRouter.Router(app, httpRouter.RouterDeps{
		MemberUC: memberUC,
		OrderUC:  orderUC,
		Log:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
