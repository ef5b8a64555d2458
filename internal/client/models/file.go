// Package models defines client-side data models used by the docfolders CLI.
package models

// Status is the upload/processing state of a File.
type Status string

const (
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// File is one uploaded document.
//
// Selected and Show are transient, client-only flags: they are never sent to
// the backend and never persisted in the local cache.
type File struct {
	ID        string `json:"id"`
	Name      string `json:"nome"`
	FolderID  string `json:"pasta_id"`
	MediaType string `json:"tipo"`
	Size      int64  `json:"tamanho"`
	Status    Status `json:"status"`

	Selected bool `json:"-"`
	Show     bool `json:"-"`
}

// Ready reports whether the file finished processing and can take part in
// bulk operations.
func (f File) Ready() bool {
	return f.Status == StatusReady
}
