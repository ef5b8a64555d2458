package client

import (
	"context"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	ListFolders(ctx context.Context) ([]models.Folder, error)
	CreateFolder(ctx context.Context, name string) (*models.Folder, error)
	RenameFolder(ctx context.Context, id, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error

	MoveFiles(ctx context.Context, fileIDs []string, destinationID string) (*models.TransferResult, error)
	CopyFiles(ctx context.Context, fileIDs []string, destinationID string) (*models.TransferResult, error)
	DeleteFiles(ctx context.Context, fileIDs []string) (*models.TransferResult, error)
	RenameFile(ctx context.Context, id, name string) (*models.File, error)
}
