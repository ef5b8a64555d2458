package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docfolders/internal/dbx"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/files"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/folders"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// use the same code inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
}
