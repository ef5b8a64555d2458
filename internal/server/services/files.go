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
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/files"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docfolders/internal/server/storage"
	"github.com/google/uuid"
)

// ErrDestinationNotFound is returned when the target folder of a move or
// copy does not exist or belongs to another user.
var ErrDestinationNotFound = fmt.Errorf("destination folder: %w", common.ErrNotFound)

// FileService runs the file operations of one user.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	logger      logging.Logger
	newID       func() string
	newKey      func(userID string) string
}

// NewFileService constructs a FileService. Blob copies and deletions go to store.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, logger logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      logger.With("module", "files"),
		newID:       uuid.NewString,
		newKey:      storage.NewStorageKey,
	}
}

// Move reassigns every listed file to destID. Files that cannot be moved are
// reported in the result and do not stop the others.
func (s *FileService) Move(ctx context.Context, userID string, ids []string, destID string) (*models.TransferResult, error) {
	ids, err := validateTransfer(ids, destID)
	if err != nil {
		return nil, err
	}

	o := &outcome{op: opMove}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkDestination(ctx, tx, userID, destID); err != nil {
			return err
		}
		repo := s.repomanager.Files(tx)
		for _, id := range ids {
			f, msg, err := s.transferable(ctx, repo, userID, id, destID)
			if err != nil {
				return err
			}
			if msg != "" {
				o.fail(id, msg)
				continue
			}

			// a constraint violation aborts the whole transaction, so
			// collisions must be caught by transferable beforehand
			if err := repo.SetFolder(ctx, userID, id, destID); err != nil {
				return fmt.Errorf("move file %s: %w", id, err)
			}
			f.FolderID = destID
			o.ok(*f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := o.result()
	s.logger.Info(ctx, "files moved", "user", userID, "destination", destID, "moved", len(res.Items), "failed", len(res.Failed))
	return res, nil
}

// Copy duplicates every listed file, record and blob, into destID. The
// copies get new ids.
func (s *FileService) Copy(ctx context.Context, userID string, ids []string, destID string) (*models.TransferResult, error) {
	ids, err := validateTransfer(ids, destID)
	if err != nil {
		return nil, err
	}

	o := &outcome{op: opCopy}
	var copied []string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkDestination(ctx, tx, userID, destID); err != nil {
			return err
		}
		repo := s.repomanager.Files(tx)
		for _, id := range ids {
			src, msg, err := s.transferable(ctx, repo, userID, id, destID)
			if err != nil {
				return err
			}
			if msg != "" {
				o.fail(id, msg)
				continue
			}

			dup := *src
			dup.ID = s.newID()
			dup.FolderID = destID
			dup.StorageKey = ""
			if src.StorageKey != "" {
				dup.StorageKey = s.newKey(userID)
				if err := s.store.Copy(ctx, src.StorageKey, dup.StorageKey); err != nil {
					s.logger.Warn(ctx, "blob copy failed", "file", id, "error", err)
					o.fail(id, MsgCopyFailed)
					continue
				}
				copied = append(copied, dup.StorageKey)
			}

			if err := repo.Create(ctx, &dup); err != nil {
				return fmt.Errorf("copy file %s: %w", id, err)
			}
			o.ok(dup)
		}
		return nil
	})
	if err != nil {
		// the records were rolled back; their blobs would be orphans
		s.deleteBlobs(ctx, copied)
		return nil, err
	}

	res := o.result()
	s.logger.Info(ctx, "files copied", "user", userID, "destination", destID, "copied", len(res.Items), "failed", len(res.Failed))
	return res, nil
}

// Delete removes every listed file. Blobs are deleted once the records are
// gone; a failed blob deletion is logged and does not fail the item.
func (s *FileService) Delete(ctx context.Context, userID string, ids []string) (*models.TransferResult, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no files given: %w", common.ErrValidation)
	}

	o := &outcome{op: opDelete}
	var keys []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)
		for _, id := range ids {
			f, err := repo.Get(ctx, userID, id)
			if errors.Is(err, common.ErrNotFound) {
				o.fail(id, MsgFileNotFound)
				continue
			}
			if err != nil {
				return fmt.Errorf("get file %s: %w", id, err)
			}
			if err := repo.Delete(ctx, userID, id); err != nil {
				return fmt.Errorf("delete file %s: %w", id, err)
			}
			if f.StorageKey != "" {
				keys = append(keys, f.StorageKey)
			}
			o.ok(*f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deleteBlobs(ctx, keys)
	res := o.result()
	s.logger.Info(ctx, "files deleted", "user", userID, "deleted", len(res.Items), "failed", len(res.Failed))
	return res, nil
}

// Rename gives one file a new name, unique within its folder.
func (s *FileService) Rename(ctx context.Context, userID, id, name string) (*models.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty name: %w", common.ErrValidation)
	}

	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.File, error) {
		repo := s.repomanager.Files(tx)
		f, err := repo.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if f.Name == name {
			return f, nil
		}
		taken, err := repo.NameExists(ctx, f.FolderID, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("rename file: %w", common.ErrAlreadyExists)
		}
		if err := repo.Rename(ctx, userID, id, name); err != nil {
			return nil, err
		}
		f.Name = name
		return f, nil
	})
}

func (s *FileService) checkDestination(ctx context.Context, tx dbx.DBTX, userID, destID string) error {
	_, err := s.repomanager.Folders(tx).Get(ctx, userID, destID)
	if errors.Is(err, common.ErrNotFound) {
		return ErrDestinationNotFound
	}
	if err != nil {
		return fmt.Errorf("get destination: %w", err)
	}
	return nil
}

// transferable loads a file and returns the failure message that keeps it
// from going to destID, or "" when it can go. Only infrastructure failures
// are returned as errors.
func (s *FileService) transferable(ctx context.Context, repo files.Repository, userID, id, destID string) (*models.File, string, error) {
	f, err := repo.Get(ctx, userID, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, MsgFileNotFound, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("get file %s: %w", id, err)
	}
	if f.Status != models.StatusReady {
		return f, MsgFileNotReady, nil
	}
	if f.FolderID == destID {
		return f, MsgAlreadyInFolder, nil
	}
	taken, err := repo.NameExists(ctx, destID, f.Name)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return f, MsgNameTaken, nil
	}
	return f, "", nil
}

func (s *FileService) deleteBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "blob delete failed", "key", key, "error", err)
		}
	}
}

func validateTransfer(ids []string, destID string) ([]string, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no files given: %w", common.ErrValidation)
	}
	if destID == "" {
		return nil, fmt.Errorf("no destination given: %w", common.ErrValidation)
	}
	return ids, nil
}
