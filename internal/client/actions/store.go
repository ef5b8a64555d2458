package actions

import (
	"context"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/transfer"
	"github.com/dmitrijs2005/docfolders/internal/logging"
)

// Store is the screen-level collection the surfaces read from and mutate.
type Store interface {
	Snapshot() []models.Folder
	Folder(id string) (models.Folder, bool)
	FolderOf(fileID string) (models.Folder, models.File, bool)
	AddFiles(folderID string, files []models.File)
	RemoveFiles(ids []string)
	AddFolder(folder models.Folder)
	RemoveFolder(id string) error
	RenameFile(id, name string)
	RenameFolder(id, name string)
}

// API is the backend surface used by the menus.
type API interface {
	transfer.API
	DeleteFiles(ctx context.Context, fileIDs []string) (*models.TransferResult, error)
	RenameFile(ctx context.Context, id, name string) (*models.File, error)
	CreateFolder(ctx context.Context, name string) (*models.Folder, error)
	RenameFolder(ctx context.Context, id, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// Notifier shows the outcome of a confirmed modal to the user.
type Notifier interface {
	Success(message string)
	// Failures lists per-file errors of a partially (or fully) failed operation.
	Failures(message string, failed []models.ItemError)
	Error(err error)
}

type Deps struct {
	Store    Store
	API      API
	Notifier Notifier
	Logger   logging.Logger
}

// notify picks Success or Failures for a bulk result.
func (d Deps) notify(res models.TransferResult) {
	if d.Notifier == nil {
		return
	}
	if res.HasFailures() {
		d.Notifier.Failures(res.Message, res.Failed)
		return
	}
	d.Notifier.Success(res.Message)
}

func (d Deps) fail(err error) {
	if d.Notifier != nil {
		d.Notifier.Error(err)
	}
}
