// Package storage copies and deletes file blobs in object storage.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the part of object storage the file services need. Uploads
// and downloads happen elsewhere.
type BlobStore interface {
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
}

// NewStorageKey returns a fresh, unique object key for userID.
func NewStorageKey(userID string) string {
	return newKeyAt(userID, time.Now())
}

func newKeyAt(userID string, d time.Time) string {
	return fmt.Sprintf("users/%s/%d/%d/%d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// NopStore accepts every call and stores nothing. It is used when no bucket
// is configured.
type NopStore struct{}

func (NopStore) Copy(context.Context, string, string) error { return nil }
func (NopStore) Delete(context.Context, string) error       { return nil }
