// Package tree holds the folder/file collection shown on the documents
// screen. It is the single owner of that collection: action surfaces and the
// CLI read snapshots from it and push changes back through its mutators.
package tree

import (
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/dmitrijs2005/docfolders/internal/client/selection"
)

var (
	ErrGeneralFolder  = errors.New("the general folder cannot be removed")
	ErrFolderNotFound = errors.New("folder not found")
)

// Tree is safe for concurrent use. Every mutator swaps in a new snapshot, so
// slices returned by Snapshot are never modified afterwards.
type Tree struct {
	mu      sync.RWMutex
	folders []models.Folder
	query   string
}

func New(folders []models.Folder) *Tree {
	t := &Tree{}
	t.Replace(folders)
	return t
}

// Snapshot returns the current collection. Callers must treat it as read-only.
func (t *Tree) Snapshot() []models.Folder {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.folders
}

func (t *Tree) Folder(id string) (models.Folder, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := models.FindFolder(t.folders, id); i >= 0 {
		return t.folders[i].Clone(), true
	}
	return models.Folder{}, false
}

// FolderOf finds the folder holding the file with the given id.
func (t *Tree) FolderOf(fileID string) (models.Folder, models.File, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, f := range t.folders {
		if i := f.FileIndex(fileID); i >= 0 {
			return f.Clone(), f.Files[i], true
		}
	}
	return models.Folder{}, models.File{}, false
}

// General returns the distinguished general folder, if loaded.
func (t *Tree) General() (models.Folder, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, f := range t.folders {
		if f.General {
			return f.Clone(), true
		}
	}
	return models.Folder{}, false
}

// Replace swaps the whole collection, e.g. after a reload. Open flags of
// folders that still exist are kept.
func (t *Tree) Replace(folders []models.Folder) {
	next := models.CloneFolders(folders)
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range next {
		if j := models.FindFolder(t.folders, next[i].ID); j >= 0 {
			next[i].Open = t.folders[j].Open
		}
	}
	t.commitLocked(next)
}

// ReplaceFolder swaps one folder by id. An unknown id is ignored.
func (t *Tree) ReplaceFolder(folder models.Folder) {
	t.update(func(folders []models.Folder) []models.Folder {
		i := models.FindFolder(folders, folder.ID)
		if i < 0 {
			return folders
		}
		next := folder.Clone()
		next.Open = folders[i].Open
		folders[i] = next
		return folders
	})
}

// AddFiles appends files to a folder. Files already present are skipped and
// added files arrive unselected.
func (t *Tree) AddFiles(folderID string, files []models.File) {
	t.update(func(folders []models.Folder) []models.Folder {
		i := models.FindFolder(folders, folderID)
		if i < 0 {
			return folders
		}
		folder := folders[i].Clone()
		for _, f := range files {
			if folder.FileIndex(f.ID) >= 0 {
				continue
			}
			f.FolderID = folderID
			f.Selected = false
			folder.Files = append(folder.Files, f)
		}
		folders[i] = folder
		return folders
	})
}

// RemoveFiles drops the given files from whichever folder holds them.
func (t *Tree) RemoveFiles(ids []string) {
	t.update(func(folders []models.Folder) []models.Folder {
		for i := range folders {
			folders[i] = folders[i].WithoutFiles(ids)
		}
		return folders
	})
}

func (t *Tree) AddFolder(folder models.Folder) {
	t.update(func(folders []models.Folder) []models.Folder {
		if models.FindFolder(folders, folder.ID) >= 0 {
			return folders
		}
		return append(folders, folder.Clone())
	})
}

func (t *Tree) RemoveFolder(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := models.FindFolder(t.folders, id)
	if i < 0 {
		return ErrFolderNotFound
	}
	if t.folders[i].General {
		return ErrGeneralFolder
	}
	next := make([]models.Folder, 0, len(t.folders)-1)
	next = append(next, t.folders[:i]...)
	next = append(next, t.folders[i+1:]...)
	t.commitLocked(next)
	return nil
}

func (t *Tree) RenameFolder(id, name string) {
	t.update(func(folders []models.Folder) []models.Folder {
		if i := models.FindFolder(folders, id); i >= 0 {
			folders[i].Name = name
		}
		return folders
	})
}

func (t *Tree) RenameFile(id, name string) {
	t.update(func(folders []models.Folder) []models.Folder {
		for i := range folders {
			if j := folders[i].FileIndex(id); j >= 0 {
				folder := folders[i].Clone()
				folder.Files[j].Name = name
				folders[i] = folder
				break
			}
		}
		return folders
	})
}

func (t *Tree) Select(folderID, fileID string, checked bool) {
	t.update(func(folders []models.Folder) []models.Folder {
		return selection.ToggleFileSelected(folders, folderID, fileID, checked)
	})
}

func (t *Tree) SelectFolder(folderID string) {
	t.update(func(folders []models.Folder) []models.Folder {
		return selection.ToggleFolderSelected(folders, folderID)
	})
}

func (t *Tree) ClearSelection(folderID string) {
	t.update(func(folders []models.Folder) []models.Folder {
		return selection.ClearSelection(folders, folderID)
	})
}

// ToggleOpen expands or collapses a folder.
func (t *Tree) ToggleOpen(folderID string) {
	t.update(func(folders []models.Folder) []models.Folder {
		if i := models.FindFolder(folders, folderID); i >= 0 {
			folders[i].Open = !folders[i].Open
		}
		return folders
	})
}

// Filter marks files whose name contains query (case-insensitive) as shown,
// and folders as shown when their name matches or any file is shown. An
// empty query shows everything. The query sticks across later mutations.
func (t *Tree) Filter(query string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.query = strings.TrimSpace(query)
	t.commitLocked(shallowCopy(t.folders))
}

func (t *Tree) Query() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.query
}

// update hands fn a fresh top-level copy of the collection; fn may replace
// elements but must not mutate the Files of existing ones in place.
func (t *Tree) update(fn func([]models.Folder) []models.Folder) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitLocked(fn(shallowCopy(t.folders)))
}

func (t *Tree) commitLocked(folders []models.Folder) {
	t.folders = applyFilter(folders, t.query)
}

func applyFilter(folders []models.Folder, query string) []models.Folder {
	q := strings.ToLower(query)
	for i := range folders {
		folder := folders[i].Clone()
		anyShown := false
		for j := range folder.Files {
			show := q == "" || strings.Contains(strings.ToLower(folder.Files[j].Name), q)
			folder.Files[j].Show = show
			anyShown = anyShown || show
		}
		folder.Show = q == "" || anyShown || strings.Contains(strings.ToLower(folder.Name), q)
		folders[i] = folder
	}
	return folders
}

func shallowCopy(folders []models.Folder) []models.Folder {
	out := make([]models.Folder, len(folders))
	copy(out, folders)
	return out
}
