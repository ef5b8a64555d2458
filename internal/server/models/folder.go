// Package models defines the records stored by the server and the JSON
// shapes exchanged with clients.
package models

import "time"

// GeneralFolderName is the display name of the folder every user owns.
const GeneralFolderName = "Arquivos gerais"

// Folder is one row of the folders table plus, when listed, its files.
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"nome"`
	ParentID  string    `json:"pasta_pai_id,omitempty"`
	General   bool      `json:"geral"`
	CreatedAt time.Time `json:"-"`
	Files     []File    `json:"arquivos"`
}
