// Package sqlite adaptador embebido (modernc, sin cgo) del ejecutor de queries. Se usa en
// desarrollo y en los tests de integración.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath base en memoria; vive mientras el *sql.DB siga abierto.
const MemoryPath = ":memory:"

// Open abre la base y verifica la conexión. Se fuerza una sola conexión: cada conexión a
// ":memory:" es una base distinta y SQLite serializa las escrituras de todos modos.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = MemoryPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}
