package files

import (
	"context"

	"github.com/dmitrijs2005/docfolders/internal/server/models"
)

// Repository stores file records. Every method is scoped to one user.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.File, error)
	ListByFolder(ctx context.Context, userID, folderID string) ([]*models.File, error)
	Get(ctx context.Context, userID, id string) (*models.File, error)
	NameExists(ctx context.Context, folderID, name string) (bool, error)
	Create(ctx context.Context, file *models.File) error
	SetFolder(ctx context.Context, userID, id, folderID string) error
	Rename(ctx context.Context, userID, id, name string) error
	Delete(ctx context.Context, userID, id string) error
}
