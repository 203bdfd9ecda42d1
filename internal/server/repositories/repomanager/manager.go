package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/onepass/internal/dbx"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/entries"
	"github.com/dmitrijs2005/onepass/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
}
