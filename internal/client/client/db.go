package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/client/migrations"
	"github.com/dmitrijs2005/docfolders/internal/client/repositories/snapshots"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the local cache repositories.
type Repositories struct {
	DB        *sql.DB
	Snapshots snapshots.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded cache migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the cache at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// one connection keeps ":memory:" caches consistent and serializes writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}

	return &Repositories{
		DB:        db,
		Snapshots: snapshots.NewSQLiteRepository(db),
	}, nil
}
