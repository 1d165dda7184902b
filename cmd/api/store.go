package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/seed"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/shop-query-api/pkg/config"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

// store ejecutor y transacciones de solo lectura del driver configurado.
type store struct {
	exec  ports.QueryExecutor
	tx    ports.ReadTxRunner
	close func()
}

// openStore conecta con PostgreSQL o SQLite. Una base SQLite en memoria se crea y siembra al
// arrancar; sin eso la API no tendría datos.
func openStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*store, error) {
	schema := catalog.Schema()
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &store{
			exec:  postgres.NewExecutor(pool, schema),
			tx:    postgres.NewTxRunner(pool, schema),
			close: pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		exec := sqlite.NewExecutor(db, schema)
		if cfg.SQLitePath == sqlite.MemoryPath {
			if err := seed.Run(ctx, exec, sqlbuild.SQLite, seed.Shop(), seed.Options{}); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("sembrar sqlite en memoria: %w", err)
			}
			log.Info().Msg("sqlite en memoria sembrada con el dataset de ejemplo")
		}
		return &store{
			exec:  exec,
			tx:    sqlite.NewTxRunner(db, schema),
			close: func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
	}
}
