package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/docfolders/internal/common"
	"github.com/dmitrijs2005/docfolders/internal/dbx"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/files"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/folders"
	"github.com/stretchr/testify/require"
)

// memDB is an in-memory stand-in for both repositories. Order of insertion is
// the listing order.
type memDB struct {
	mu      sync.Mutex
	folders []*models.Folder
	files   []*models.File

	getErr    error
	createErr error
}

type fakeManager struct{ db *memDB }

func (m fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m fakeManager) Folders(dbx.DBTX) folders.Repository         { return folderRepo{m.db} }
func (m fakeManager) Files(dbx.DBTX) files.Repository             { return fileRepo{m.db} }

type folderRepo struct{ db *memDB }

func (r folderRepo) ListByUser(_ context.Context, userID string) ([]*models.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*models.Folder
	for _, f := range r.db.folders {
		if f.UserID == userID && f.General {
			c := *f
			out = append(out, &c)
		}
	}
	for _, f := range r.db.folders {
		if f.UserID == userID && !f.General {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r folderRepo) Get(_ context.Context, userID, id string) (*models.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.getErr != nil {
		return nil, r.db.getErr
	}
	for _, f := range r.db.folders {
		if f.UserID == userID && f.ID == id {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r folderRepo) GetGeneral(_ context.Context, userID string) (*models.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.folders {
		if f.UserID == userID && f.General {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r folderRepo) Create(_ context.Context, folder *models.Folder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.createErr != nil {
		return r.db.createErr
	}
	c := *folder
	c.Files = nil
	r.db.folders = append(r.db.folders, &c)
	return nil
}

func (r folderRepo) Rename(_ context.Context, userID, id, name string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.folders {
		if f.UserID == userID && f.ID == id {
			f.Name = name
			return nil
		}
	}
	return common.ErrNotFound
}

func (r folderRepo) Delete(_ context.Context, userID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, f := range r.db.folders {
		if f.UserID == userID && f.ID == id {
			r.db.folders = append(r.db.folders[:i], r.db.folders[i+1:]...)
			kept := r.db.files[:0]
			for _, file := range r.db.files {
				if file.FolderID != id {
					kept = append(kept, file)
				}
			}
			r.db.files = kept
			return nil
		}
	}
	return common.ErrNotFound
}

type fileRepo struct{ db *memDB }

func (r fileRepo) ListByUser(_ context.Context, userID string) ([]*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*models.File
	for _, f := range r.db.files {
		if f.UserID == userID {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r fileRepo) ListByFolder(_ context.Context, userID, folderID string) ([]*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*models.File
	for _, f := range r.db.files {
		if f.UserID == userID && f.FolderID == folderID {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r fileRepo) Get(_ context.Context, userID, id string) (*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.files {
		if f.UserID == userID && f.ID == id {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r fileRepo) NameExists(_ context.Context, folderID, name string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.files {
		if f.FolderID == folderID && f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r fileRepo) Create(_ context.Context, file *models.File) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.createErr != nil {
		return r.db.createErr
	}
	c := *file
	r.db.files = append(r.db.files, &c)
	return nil
}

func (r fileRepo) SetFolder(_ context.Context, userID, id, folderID string) error {
	return r.update(userID, id, func(f *models.File) { f.FolderID = folderID })
}

func (r fileRepo) Rename(_ context.Context, userID, id, name string) error {
	return r.update(userID, id, func(f *models.File) { f.Name = name })
}

func (r fileRepo) Delete(_ context.Context, userID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, f := range r.db.files {
		if f.UserID == userID && f.ID == id {
			r.db.files = append(r.db.files[:i], r.db.files[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r fileRepo) update(userID, id string, fn func(*models.File)) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.files {
		if f.UserID == userID && f.ID == id {
			fn(f)
			return nil
		}
	}
	return common.ErrNotFound
}

func (db *memDB) file(id string) *models.File {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, f := range db.files {
		if f.ID == id {
			c := *f
			return &c
		}
	}
	return nil
}

// fakeStore records blob calls; keys listed in failCopy/failDelete error.
type fakeStore struct {
	mu         sync.Mutex
	copies     [][2]string
	deletes    []string
	failCopy   map[string]bool
	failDelete map[string]bool
}

func (s *fakeStore) Copy(_ context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCopy[src] {
		return errors.New("copy failed")
	}
	s.copies = append(s.copies, [2]string{src, dst})
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete[key] {
		return errors.New("delete failed")
	}
	s.deletes = append(s.deletes, key)
	return nil
}

// txDB returns a sqlmock database expecting n transactions, each ending in
// commit (or rollback when rollback is set).
func txDB(t *testing.T, n int, rollback bool) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		if rollback {
			mock.ExpectRollback()
		} else {
			mock.ExpectCommit()
		}
	}
	return db, mock
}

func seq(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}
