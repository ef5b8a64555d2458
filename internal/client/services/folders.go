package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docfolders/internal/client/client"
	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/docfolders/internal/logging"
)

// Lister is the part of client.Client needed to load the tree.
type Lister interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
}

// LoadResult is a loaded tree and whether it came from the local cache.
type LoadResult struct {
	Folders []models.Folder
	Offline bool
}

type FolderService interface {
	// Load fetches the tree from the backend and refreshes the cache. When
	// the backend is unavailable the cached snapshot is returned instead.
	Load(ctx context.Context) (*LoadResult, error)
	// Save writes the current tree to the cache.
	Save(ctx context.Context, folders []models.Folder) error
}

type folderService struct {
	api    Lister
	repo   snapshots.Repository
	logger logging.Logger
}

func NewFolderService(api Lister, repo snapshots.Repository, logger logging.Logger) FolderService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &folderService{api: api, repo: repo, logger: logger.With("module", "folder_service")}
}

func (s *folderService) Load(ctx context.Context) (*LoadResult, error) {
	folders, err := s.api.ListFolders(ctx)
	if err == nil {
		if serr := s.repo.SaveAll(ctx, folders); serr != nil {
			s.logger.Warn(ctx, "failed to refresh cache", "error", serr)
		}
		return &LoadResult{Folders: folders}, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	s.logger.Info(ctx, "backend unavailable, using cached tree")
	cached, cerr := s.repo.LoadAll(ctx)
	if cerr != nil {
		return nil, fmt.Errorf("load cache: %w", cerr)
	}
	if len(cached) == 0 {
		return nil, client.ErrLocalDataNotAvailable
	}
	return &LoadResult{Folders: cached, Offline: true}, nil
}

func (s *folderService) Save(ctx context.Context, folders []models.Folder) error {
	if err := s.repo.SaveAll(ctx, folders); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}
