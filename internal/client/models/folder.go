package models

// RootID is the parent sentinel for top-level folders.
const RootID = ""

// Folder is a named container of Files. A folder exclusively owns its files.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	ParentID string `json:"pasta_pai_id,omitempty"`
	// General marks the distinguished "general files" folder, which always
	// exists and cannot be deleted.
	General bool   `json:"geral"`
	Files   []File `json:"arquivos"`

	Selected bool `json:"-"`
	Open     bool `json:"-"`
	Show     bool `json:"-"`
}

// Clone returns a copy of f whose Files slice does not share memory with f.
func (f Folder) Clone() Folder {
	c := f
	if f.Files != nil {
		c.Files = make([]File, len(f.Files))
		copy(c.Files, f.Files)
	}
	return c
}

// WithFiles returns a copy of f holding files instead of f.Files.
func (f Folder) WithFiles(files []File) Folder {
	c := f
	c.Files = files
	return c
}

// FileIndex returns the position of the file with the given id, or -1.
func (f Folder) FileIndex(id string) int {
	for i := range f.Files {
		if f.Files[i].ID == id {
			return i
		}
	}
	return -1
}

// WithoutFiles returns a copy of f with every file whose id is in ids removed.
// Order of the remaining files is preserved.
func (f Folder) WithoutFiles(ids []string) Folder {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]File, 0, len(f.Files))
	for _, file := range f.Files {
		if _, ok := drop[file.ID]; ok {
			continue
		}
		kept = append(kept, file)
	}
	return f.WithFiles(kept)
}

// CloneFolders deep-copies a folder collection.
func CloneFolders(folders []Folder) []Folder {
	if folders == nil {
		return nil
	}
	out := make([]Folder, len(folders))
	for i := range folders {
		out[i] = folders[i].Clone()
	}
	return out
}

// FindFolder returns the index of the folder with the given id, or -1.
func FindFolder(folders []Folder, id string) int {
	for i := range folders {
		if folders[i].ID == id {
			return i
		}
	}
	return -1
}
