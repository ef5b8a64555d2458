// Package snapshots caches the last folder tree fetched from the backend so
// the CLI can show it while offline.
package snapshots

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
)

// Repository persists whole-tree snapshots. Transient UI flags (selection,
// open, filter visibility) are never stored.
type Repository interface {
	// SaveAll replaces the cached tree with folders.
	SaveAll(ctx context.Context, folders []models.Folder) error
	// LoadAll returns the cached tree in stored order. An empty cache yields
	// an empty slice and no error.
	LoadAll(ctx context.Context) ([]models.Folder, error)
	// SavedAt reports when SaveAll last succeeded; ok is false when never.
	SavedAt(ctx context.Context) (t time.Time, ok bool, err error)
}
