package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/dbx"
)

const keySavedAt = "snapshot_saved_at"

// SQLiteRepository implements Repository over the local cache database.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) SaveAll(ctx context.Context, folders []models.Folder) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM files`); err != nil {
			return fmt.Errorf("failed to clear files: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM folders`); err != nil {
			return fmt.Errorf("failed to clear folders: %w", err)
		}

		for i, f := range folders {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO folders (id, name, parent_id, general, position) VALUES (?, ?, ?, ?, ?)`,
				f.ID, f.Name, f.ParentID, boolToInt(f.General), i)
			if err != nil {
				return fmt.Errorf("failed to insert folder %s: %w", f.ID, err)
			}
			for j, file := range f.Files {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO files (id, folder_id, name, media_type, size, status, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
					file.ID, f.ID, file.Name, file.MediaType, file.Size, string(file.Status), j)
				if err != nil {
					return fmt.Errorf("failed to insert file %s: %w", file.ID, err)
				}
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO metadata (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			keySavedAt, r.now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to stamp snapshot: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]models.Folder, error) {
	return dbx.InTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) ([]models.Folder, error) {
		folders, err := loadFolders(ctx, tx)
		if err != nil {
			return nil, err
		}
		if err := loadFiles(ctx, tx, folders); err != nil {
			return nil, err
		}
		return folders, nil
	})
}

func loadFolders(ctx context.Context, db dbx.DBTX) ([]models.Folder, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, parent_id, general FROM folders ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var (
			f       models.Folder
			general int
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &general); err != nil {
			return nil, err
		}
		f.General = general != 0
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func loadFiles(ctx context.Context, db dbx.DBTX, folders []models.Folder) error {
	rows, err := db.QueryContext(ctx,
		`SELECT id, folder_id, name, media_type, size, status FROM files ORDER BY folder_id, position`)
	if err != nil {
		return fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int, len(folders))
	for i, f := range folders {
		index[f.ID] = i
	}
	for rows.Next() {
		var (
			file   models.File
			status string
		)
		if err := rows.Scan(&file.ID, &file.FolderID, &file.Name, &file.MediaType, &file.Size, &status); err != nil {
			return err
		}
		file.Status = models.Status(status)
		if i, ok := index[file.FolderID]; ok {
			folders[i].Files = append(folders[i].Files, file)
		}
	}
	return rows.Err()
}

func (r *SQLiteRepository) SavedAt(ctx context.Context) (time.Time, bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, keySavedAt).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read snapshot stamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad snapshot stamp %q: %w", raw, err)
	}
	return t, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
