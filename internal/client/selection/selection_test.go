package selection

import (
	"testing"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFolders() []models.Folder {
	return []models.Folder{
		{ID: "g", Name: "Arquivos gerais", General: true, Files: []models.File{
			{ID: "a", FolderID: "g", Status: models.StatusReady},
			{ID: "b", FolderID: "g", Status: models.StatusReady},
			{ID: "c", FolderID: "g", Status: models.StatusProcessing},
		}},
		{ID: "h", Name: "Contratos", Files: []models.File{
			{ID: "d", FolderID: "h", Status: models.StatusReady},
		}},
		{ID: "empty", Name: "Vazia"},
	}
}

func ids(files []models.File) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.ID)
	}
	return out
}

func TestToggleFileSelected_SelectsExactlyOne(t *testing.T) {
	in := sampleFolders()
	out := ToggleFileSelected(in, "g", "b", true)

	assert.Equal(t, []string{"b"}, ids(SelectedFilesOf(out[0])))
	assert.Empty(t, SelectedFilesOf(out[1]), "other folders are unaffected")
	assert.False(t, out[0].Selected, "file toggles never cascade to the folder")
	assert.Empty(t, SelectedFilesOf(in[0]), "input snapshot must not change")
}

func TestToggleFileSelected_Unselect(t *testing.T) {
	out := ToggleFileSelected(sampleFolders(), "g", "a", true)
	out = ToggleFileSelected(out, "g", "b", true)
	out = ToggleFileSelected(out, "g", "a", false)

	assert.Equal(t, []string{"b"}, ids(SelectedFilesOf(out[0])))
}

func TestToggleFileSelected_UnknownIDsAreNoops(t *testing.T) {
	in := sampleFolders()
	assert.Equal(t, in, ToggleFileSelected(in, "nope", "a", true))
	assert.Equal(t, in, ToggleFileSelected(in, "g", "nope", true))
}

func TestToggleFileSelected_Idempotent(t *testing.T) {
	once := ToggleFileSelected(sampleFolders(), "g", "a", true)
	twice := ToggleFileSelected(once, "g", "a", true)
	assert.Equal(t, once, twice)
}

func TestToggleFileSelected_NotReadyIsIgnored(t *testing.T) {
	out := ToggleFileSelected(sampleFolders(), "g", "c", true)
	assert.Empty(t, SelectedFilesOf(out[0]))
}

func TestToggleFolderSelected_BulkSelectsReadyFiles(t *testing.T) {
	out := ToggleFolderSelected(sampleFolders(), "g")

	require.True(t, out[0].Selected)
	assert.Equal(t, []string{"a", "b"}, ids(SelectedFilesOf(out[0])))

	out = ToggleFolderSelected(out, "g")
	assert.False(t, out[0].Selected)
	assert.False(t, HasSelection(out[0]))
}

func TestToggleFolderSelected_EmptyFolderDisabled(t *testing.T) {
	in := sampleFolders()
	out := ToggleFolderSelected(in, "empty")
	assert.False(t, out[2].Selected)
}

func TestClearSelection(t *testing.T) {
	out := ToggleFolderSelected(sampleFolders(), "g")
	out = ClearSelection(out, "g")

	assert.False(t, out[0].Selected)
	assert.Nil(t, SelectedIDs(out[0]))
}

func TestSelectedFilesOf_PreservesOrder(t *testing.T) {
	f := models.Folder{Files: []models.File{
		{ID: "1", Selected: true}, {ID: "2"}, {ID: "3", Selected: true},
	}}
	assert.Equal(t, []string{"1", "3"}, ids(SelectedFilesOf(f)))
	assert.Equal(t, []string{"1", "3"}, SelectedIDs(f))
	assert.True(t, HasSelection(f))
}
