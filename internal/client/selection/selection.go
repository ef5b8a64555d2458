// Package selection tracks which files of a folder collection are marked for
// a bulk operation.
//
// Every function is pure: it takes a folder snapshot and returns a new one,
// leaving its input untouched. Unknown ids are no-ops.
//
// A folder's own Selected flag is a bulk-select affordance. Toggling it copies
// the new value onto every ready child; toggling a child never changes the
// folder flag.
package selection

import "github.com/dmitrijs2005/docfolders/internal/client/models"

// ToggleFileSelected sets the selected flag of one file inside one folder.
// Files that are not ready cannot be selected.
func ToggleFileSelected(folders []models.Folder, folderID, fileID string, checked bool) []models.Folder {
	fi := models.FindFolder(folders, folderID)
	if fi < 0 {
		return folders
	}
	idx := folders[fi].FileIndex(fileID)
	if idx < 0 {
		return folders
	}
	file := folders[fi].Files[idx]
	if checked && !file.Ready() {
		return folders
	}
	if file.Selected == checked {
		return folders
	}

	out := shallow(folders)
	folder := folders[fi].Clone()
	folder.Files[idx].Selected = checked
	out[fi] = folder
	return out
}

// ToggleFolderSelected flips the folder flag and applies it to every ready
// file of that folder. Folders without files are left alone.
func ToggleFolderSelected(folders []models.Folder, folderID string) []models.Folder {
	fi := models.FindFolder(folders, folderID)
	if fi < 0 || len(folders[fi].Files) == 0 {
		return folders
	}

	out := shallow(folders)
	folder := folders[fi].Clone()
	folder.Selected = !folder.Selected
	for i := range folder.Files {
		if folder.Files[i].Ready() {
			folder.Files[i].Selected = folder.Selected
		}
	}
	out[fi] = folder
	return out
}

// ClearSelection unselects the folder and all of its files.
func ClearSelection(folders []models.Folder, folderID string) []models.Folder {
	fi := models.FindFolder(folders, folderID)
	if fi < 0 {
		return folders
	}
	out := shallow(folders)
	folder := folders[fi].Clone()
	folder.Selected = false
	for i := range folder.Files {
		folder.Files[i].Selected = false
	}
	out[fi] = folder
	return out
}

// SelectedFilesOf returns the selected files of folder in their original order.
func SelectedFilesOf(folder models.Folder) []models.File {
	var out []models.File
	for _, f := range folder.Files {
		if f.Selected {
			out = append(out, f)
		}
	}
	return out
}

// SelectedIDs returns the ids of SelectedFilesOf(folder).
func SelectedIDs(folder models.Folder) []string {
	var ids []string
	for _, f := range folder.Files {
		if f.Selected {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// HasSelection reports whether at least one file of folder is selected.
func HasSelection(folder models.Folder) bool {
	for _, f := range folder.Files {
		if f.Selected {
			return true
		}
	}
	return false
}

func shallow(folders []models.Folder) []models.Folder {
	out := make([]models.Folder, len(folders))
	copy(out, folders)
	return out
}
