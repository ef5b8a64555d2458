// Package files persists file records in PostgreSQL. Blob contents live in
// object storage; rows only carry the storage key.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/common"
	"github.com/dmitrijs2005/docfolders/internal/dbx"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, user_id, folder_id, name, media_type, size, status, storage_key, created_at FROM files`

// ListByUser returns every file of the user in folder and creation order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.File, error) {
	return r.list(ctx, selectColumns+` WHERE user_id=$1 ORDER BY folder_id, created_at, id`, userID)
}

// ListByFolder returns the files of one folder in creation order.
func (r *PostgresRepository) ListByFolder(ctx context.Context, userID, folderID string) ([]*models.File, error) {
	return r.list(ctx, selectColumns+` WHERE user_id=$1 AND folder_id=$2 ORDER BY created_at, id`, userID, folderID)
}

// Get returns one file of the user, or common.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.File, error) {
	item, err := scan(r.db.QueryRowContext(ctx, selectColumns+` WHERE user_id=$1 AND id=$2`, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return item, nil
}

// NameExists reports whether folderID already holds a file called name.
func (r *PostgresRepository) NameExists(ctx context.Context, folderID, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM files WHERE folder_id=$1 AND name=$2)`
	if err := r.db.QueryRowContext(ctx, query, folderID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check file name: %w", err)
	}
	return exists, nil
}

// Create inserts file and fills its CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, user_id, folder_id, name, media_type, size, status, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.ID, file.UserID, file.FolderID, file.Name, file.MediaType, file.Size, file.Status, file.StorageKey,
	).Scan(&file.CreatedAt)
	if err != nil {
		return mapWriteError("db error", err)
	}
	return nil
}

// SetFolder moves one file of the user into folderID.
func (r *PostgresRepository) SetFolder(ctx context.Context, userID, id, folderID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE files SET folder_id=$3 WHERE user_id=$1 AND id=$2`, userID, id, folderID)
	if err != nil {
		return mapWriteError("failed to move file", err)
	}
	return exactlyOne(res)
}

// Rename changes the name of one file of the user.
func (r *PostgresRepository) Rename(ctx context.Context, userID, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE files SET name=$3 WHERE user_id=$1 AND id=$2`, userID, id, name)
	if err != nil {
		return mapWriteError("failed to rename file", err)
	}
	return exactlyOne(res)
}

// Delete removes one file record of the user.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE user_id=$1 AND id=$2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return exactlyOne(res)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.File, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.File, error) {
	var item models.File
	if err := s.Scan(&item.ID, &item.UserID, &item.FolderID, &item.Name, &item.MediaType,
		&item.Size, &item.Status, &item.StorageKey, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// mapWriteError turns a files_folder_name_key violation into
// common.ErrAlreadyExists.
func mapWriteError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", msg, common.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func exactlyOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
