// Package folders persists folders in PostgreSQL.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/common"
	"github.com/dmitrijs2005/docfolders/internal/dbx"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, user_id, name, parent_id, general, created_at FROM folders`

// ListByUser returns the user's folders, the general folder first and the
// rest in creation order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Folder, error) {
	query := selectColumns + ` WHERE user_id=$1 ORDER BY general DESC, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
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

// Get returns one folder of the user.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	query := selectColumns + ` WHERE user_id=$1 AND id=$2`
	return r.one(ctx, query, userID, id)
}

// GetGeneral returns the user's general folder.
func (r *PostgresRepository) GetGeneral(ctx context.Context, userID string) (*models.Folder, error) {
	query := selectColumns + ` WHERE user_id=$1 AND general`
	return r.one(ctx, query, userID)
}

// Create inserts folder. A second general folder for the same user violates
// folders_one_general_idx and is reported as common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (id, user_id, name, parent_id, general)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		folder.ID, folder.UserID, folder.Name, nullable(folder.ParentID), folder.General).Scan(&folder.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Rename changes the name of one folder of the user.
func (r *PostgresRepository) Rename(ctx context.Context, userID, id, name string) error {
	query := `UPDATE folders SET name=$3 WHERE user_id=$1 AND id=$2`
	res, err := r.db.ExecContext(ctx, query, userID, id, name)
	if err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	return exactlyOne(res)
}

// Delete removes one folder of the user. Its files go with it
// (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM folders WHERE user_id=$1 AND id=$2`
	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return exactlyOne(res)
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Folder, error) {
	item, err := scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select folder: %w", err)
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Folder, error) {
	var (
		item   models.Folder
		parent sql.NullString
	)
	if err := s.Scan(&item.ID, &item.UserID, &item.Name, &parent, &item.General, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.ParentID = parent.String
	return &item, nil
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

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
