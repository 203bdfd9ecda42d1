// Package repomanager provides a concrete RepositoryManager for the supported
// SQL engines, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/server/migrations"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/entries"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations
// and exposes a schema migration hook for its dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Entries returns an entries.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLRepository(db)
}

// Dialect reports the engine the manager migrates.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and runs them against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) (*SQLRepositoryManager, error) {
	switch dialect {
	case dbx.DialectPostgres, dbx.DialectSQLite:
		return &SQLRepositoryManager{dialect: dialect}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
