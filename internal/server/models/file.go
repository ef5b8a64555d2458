package models

import "time"

// File statuses. Only ready files take part in transfers.
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusError      = "error"
)

// File is one stored document. StorageKey points at the blob and is never
// sent to clients.
type File struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	FolderID   string    `json:"pasta_id"`
	Name       string    `json:"nome"`
	MediaType  string    `json:"tipo"`
	Size       int64     `json:"tamanho"`
	Status     string    `json:"status"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"-"`
}
