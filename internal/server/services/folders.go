package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docfolders/internal/common"
	"github.com/dmitrijs2005/docfolders/internal/dbx"
	"github.com/dmitrijs2005/docfolders/internal/logging"
	"github.com/dmitrijs2005/docfolders/internal/server/models"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docfolders/internal/server/storage"
	"github.com/google/uuid"
)

// FolderService manages the folders of one user. Each user always owns a
// general folder, created on first listing, which cannot be renamed or
// deleted.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	logger      logging.Logger
	newID       func() string
}

// NewFolderService constructs a FolderService.
func NewFolderService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, logger logging.Logger) *FolderService {
	return &FolderService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      logger.With("module", "folders"),
		newID:       uuid.NewString,
	}
}

// List returns every folder of the user with its files, the general folder
// first.
func (s *FolderService) List(ctx context.Context, userID string) ([]models.Folder, error) {
	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) ([]models.Folder, error) {
		if err := s.ensureGeneral(ctx, tx, userID); err != nil {
			return nil, err
		}

		folders, err := s.repomanager.Folders(tx).ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		all, err := s.repomanager.Files(tx).ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		byFolder := make(map[string][]models.File, len(folders))
		for _, f := range all {
			byFolder[f.FolderID] = append(byFolder[f.FolderID], *f)
		}
		out := make([]models.Folder, 0, len(folders))
		for _, f := range folders {
			folder := *f
			folder.Files = byFolder[f.ID]
			if folder.Files == nil {
				folder.Files = []models.File{}
			}
			out = append(out, folder)
		}
		return out, nil
	})
}

// Create adds an empty top-level folder.
func (s *FolderService) Create(ctx context.Context, userID, name string) (*models.Folder, error) {
	name, err := folderName(name)
	if err != nil {
		return nil, err
	}

	folder := &models.Folder{ID: s.newID(), UserID: userID, Name: name, Files: []models.File{}}
	if err := s.repomanager.Folders(s.db).Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	s.logger.Info(ctx, "folder created", "user", userID, "folder", folder.ID)
	return folder, nil
}

// Rename changes the name of a folder other than the general one.
func (s *FolderService) Rename(ctx context.Context, userID, id, name string) (*models.Folder, error) {
	name, err := folderName(name)
	if err != nil {
		return nil, err
	}

	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Folder, error) {
		repo := s.repomanager.Folders(tx)
		folder, err := repo.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if folder.General {
			return nil, common.ErrGeneralFolder
		}
		if err := repo.Rename(ctx, userID, id, name); err != nil {
			return nil, err
		}
		folder.Name = name

		files, err := s.repomanager.Files(tx).ListByFolder(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		folder.Files = make([]models.File, 0, len(files))
		for _, f := range files {
			folder.Files = append(folder.Files, *f)
		}
		return folder, nil
	})
}

// Delete removes a folder other than the general one together with its
// files and their blobs.
func (s *FolderService) Delete(ctx context.Context, userID, id string) error {
	var keys []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Folders(tx)
		folder, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if folder.General {
			return common.ErrGeneralFolder
		}

		files, err := s.repomanager.Files(tx).ListByFolder(ctx, userID, id)
		if err != nil {
			return err
		}
		for _, f := range files {
			if f.StorageKey != "" {
				keys = append(keys, f.StorageKey)
			}
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "blob delete failed", "key", key, "error", err)
		}
	}
	s.logger.Info(ctx, "folder deleted", "user", userID, "folder", id, "files", len(keys))
	return nil
}

func (s *FolderService) ensureGeneral(ctx context.Context, tx dbx.DBTX, userID string) error {
	repo := s.repomanager.Folders(tx)
	_, err := repo.GetGeneral(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	general := &models.Folder{ID: s.newID(), UserID: userID, Name: models.GeneralFolderName, General: true}
	// ErrAlreadyExists means a concurrent request created it first
	if err := repo.Create(ctx, general); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
		return fmt.Errorf("create general folder: %w", err)
	}
	return nil
}

func folderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty name: %w", common.ErrValidation)
	}
	return name, nil
}
