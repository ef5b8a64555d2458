package models

import "fmt"

// TransferKind is the operation carried out by a transfer.
type TransferKind string

const (
	TransferMove TransferKind = "move"
	TransferCopy TransferKind = "copy"
)

// Verb returns the user-facing infinitive for the kind ("mover", "copiar").
func (k TransferKind) Verb() string {
	switch k {
	case TransferMove:
		return "mover"
	case TransferCopy:
		return "copiar"
	default:
		return string(k)
	}
}

// Valid reports whether k is a known kind.
func (k TransferKind) Valid() bool {
	return k == TransferMove || k == TransferCopy
}

// Source is what a transfer operates on: exactly one of File or Folder is set.
type Source struct {
	File   *File
	Folder *Folder
}

// FileSource wraps a single file.
func FileSource(f File) Source {
	return Source{File: &f}
}

// FolderSource wraps a folder; the transfer targets its selected files.
func FolderSource(f Folder) Source {
	c := f.Clone()
	return Source{Folder: &c}
}

// IsFolder reports whether the source is a whole folder (bulk operation).
func (s Source) IsFolder() bool {
	return s.Folder != nil
}

// FolderID returns the id of the folder the source lives in.
func (s Source) FolderID() string {
	if s.Folder != nil {
		return s.Folder.ID
	}
	if s.File != nil {
		return s.File.FolderID
	}
	return ""
}

// Validate checks the union invariant.
func (s Source) Validate() error {
	if (s.File == nil) == (s.Folder == nil) {
		return fmt.Errorf("transfer source must hold exactly one of file or folder")
	}
	return nil
}

// TransferRequest is one move or copy operation. It is built on confirm and
// consumed by a single remote call.
type TransferRequest struct {
	Kind          TransferKind
	FileIDs       []string
	DestinationID string
	Bulk          bool
}

// ItemError describes one file the backend refused to transfer.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"erro"`
}

// TransferResult is the backend reply to a move or copy.
//
// Items and Failed partition the requested ids; the client trusts the
// backend on that and does not re-check it.
type TransferResult struct {
	Message string      `json:"mensagem"`
	Items   []File      `json:"itens"`
	Failed  []ItemError `json:"itens_com_erros"`
	Status  int         `json:"status"`
}

// SucceededIDs lists the ids of successfully transferred files.
func (r TransferResult) SucceededIDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// HasFailures reports whether any item was rejected.
func (r TransferResult) HasFailures() bool {
	return len(r.Failed) > 0
}
