// seed crea las tablas de la tienda y carga el dataset de ejemplo en la base configurada
// (DB_DRIVER, DATABASE_URL o DB_*, SQLITE_PATH).
//
// Uso: go run ./cmd/seed [-reset] [-schema-only]
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/seed"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/shop-query-api/pkg/config"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "borrar las tablas antes de crearlas")
	schemaOnly := flag.Bool("schema-only", false, "crear las tablas sin insertar datos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var (
		db      seed.Execer
		dialect sqlbuild.Dialect
	)
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		if cfg.DB.SQLitePath == sqlite.MemoryPath {
			log.Fatal().Msg("SQLITE_PATH en memoria: la API ya siembra al arrancar, use un archivo")
		}
		conn, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir sqlite")
		}
		defer conn.Close()
		db, dialect = sqlite.NewExecutor(conn, catalog.Schema()), sqlbuild.SQLite
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		db, dialect = postgres.NewExecutor(pool, catalog.Schema()), sqlbuild.Postgres
	}

	opts := seed.Options{Reset: *reset, SchemaOnly: *schemaOnly}
	if err := seed.Run(ctx, db, dialect, seed.Shop(), opts); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Str("driver", cfg.DB.Driver).
		Bool("reset", opts.Reset).
		Bool("schema_only", opts.SchemaOnly).
		Msg("base de datos lista")
}
