package folders

import (
	"context"

	"github.com/dmitrijs2005/docfolders/internal/server/models"
)

// Repository stores folders. Every method is scoped to one user; a folder
// owned by someone else is reported as common.ErrNotFound.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Folder, error)
	Get(ctx context.Context, userID, id string) (*models.Folder, error)
	GetGeneral(ctx context.Context, userID string) (*models.Folder, error)
	Create(ctx context.Context, folder *models.Folder) error
	Rename(ctx context.Context, userID, id, name string) error
	Delete(ctx context.Context, userID, id string) error
}
