package tree

import (
	"testing"

	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []models.Folder {
	return []models.Folder{
		{ID: "g", Name: "Arquivos gerais", General: true, Files: []models.File{
			{ID: "a", FolderID: "g", Name: "Contrato.pdf", Status: models.StatusReady},
		}},
		{ID: "f", Name: "Notas", Files: []models.File{
			{ID: "b", FolderID: "f", Name: "nota-1.txt", Status: models.StatusReady},
			{ID: "c", FolderID: "f", Name: "nota-2.txt", Status: models.StatusProcessing},
		}},
		{ID: "e", Name: "Vazia"},
	}
}

func TestSnapshot_IsNotAffectedByLaterMutations(t *testing.T) {
	tr := New(sample())
	before := tr.Snapshot()

	tr.Select("f", "b", true)
	tr.RenameFolder("f", "Outras")

	assert.False(t, before[1].Files[0].Selected)
	assert.Equal(t, "Notas", before[1].Name)

	after := tr.Snapshot()
	assert.True(t, after[1].Files[0].Selected)
	assert.Equal(t, "Outras", after[1].Name)
}

func TestFolderOf(t *testing.T) {
	tr := New(sample())
	folder, file, ok := tr.FolderOf("c")
	require.True(t, ok)
	assert.Equal(t, "f", folder.ID)
	assert.Equal(t, "nota-2.txt", file.Name)

	_, _, ok = tr.FolderOf("zzz")
	assert.False(t, ok)
}

func TestMoveReconciliation(t *testing.T) {
	tr := New(sample())
	f, _ := tr.Folder("f")

	tr.ReplaceFolder(f.WithoutFiles([]string{"b"}))
	tr.AddFiles("e", []models.File{{ID: "b", FolderID: "f", Name: "nota-1.txt", Selected: true}})

	e, _ := tr.Folder("e")
	require.Len(t, e.Files, 1)
	assert.Equal(t, "e", e.Files[0].FolderID)
	assert.False(t, e.Files[0].Selected)

	f, _ = tr.Folder("f")
	assert.Len(t, f.Files, 1)
}

func TestAddFiles_SkipsDuplicates(t *testing.T) {
	tr := New(sample())
	tr.AddFiles("g", []models.File{{ID: "a"}, {ID: "z", Name: "z.pdf"}})
	g, _ := tr.General()
	assert.Len(t, g.Files, 2)
}

func TestRemoveFiles(t *testing.T) {
	tr := New(sample())
	tr.RemoveFiles([]string{"a", "c"})

	g, _ := tr.Folder("g")
	f, _ := tr.Folder("f")
	assert.Empty(t, g.Files)
	require.Len(t, f.Files, 1)
	assert.Equal(t, "b", f.Files[0].ID)
}

func TestRemoveFolder(t *testing.T) {
	tr := New(sample())

	require.ErrorIs(t, tr.RemoveFolder("g"), ErrGeneralFolder)
	require.ErrorIs(t, tr.RemoveFolder("nope"), ErrFolderNotFound)
	require.NoError(t, tr.RemoveFolder("e"))
	assert.Len(t, tr.Snapshot(), 2)
}

func TestAddFolderAndRenameFile(t *testing.T) {
	tr := New(sample())
	tr.AddFolder(models.Folder{ID: "n", Name: "Nova"})
	tr.AddFolder(models.Folder{ID: "n", Name: "Duplicada"})
	tr.RenameFile("b", "renomeada.txt")

	n, ok := tr.Folder("n")
	require.True(t, ok)
	assert.Equal(t, "Nova", n.Name)

	_, file, _ := tr.FolderOf("b")
	assert.Equal(t, "renomeada.txt", file.Name)
}

func TestSelectFolder_DelegatesToSelection(t *testing.T) {
	tr := New(sample())
	tr.SelectFolder("f")

	f, _ := tr.Folder("f")
	assert.True(t, f.Selected)
	assert.True(t, f.Files[0].Selected)
	assert.False(t, f.Files[1].Selected, "processing files are not selectable")

	tr.ClearSelection("f")
	f, _ = tr.Folder("f")
	assert.False(t, f.Selected)
	assert.False(t, f.Files[0].Selected)
}

func TestToggleOpen_SurvivesReplace(t *testing.T) {
	tr := New(sample())
	tr.ToggleOpen("f")
	tr.Replace(sample())

	f, _ := tr.Folder("f")
	assert.True(t, f.Open)
}

func TestFilter(t *testing.T) {
	tr := New(sample())
	for _, f := range tr.Snapshot() {
		assert.True(t, f.Show, "everything is shown without a query")
	}

	tr.Filter("NOTA-2")
	snap := tr.Snapshot()
	assert.False(t, snap[0].Show)
	assert.True(t, snap[1].Show)
	assert.False(t, snap[1].Files[0].Show)
	assert.True(t, snap[1].Files[1].Show)
	assert.False(t, snap[2].Show)

	tr.Filter("vaz")
	assert.True(t, tr.Snapshot()[2].Show, "folder name matches")

	tr.AddFiles("g", []models.File{{ID: "v", Name: "vazamento.pdf"}})
	g, _ := tr.General()
	assert.True(t, g.Show, "filter is re-applied after mutations")
	assert.Equal(t, "vaz", tr.Query())

	tr.Filter("")
	assert.True(t, tr.Snapshot()[0].Show)
}
