package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/docfolders/internal/client/client"
	"github.com/dmitrijs2005/docfolders/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	folders []models.Folder
	err     error
}

func (f *fakeLister) ListFolders(context.Context) ([]models.Folder, error) {
	return f.folders, f.err
}

func newRepos(t *testing.T) *client.Repositories {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

var remote = []models.Folder{{ID: "g", Name: "Arquivos gerais", General: true, Files: []models.File{
	{ID: "a", FolderID: "g", Name: "a.pdf", Status: models.StatusReady},
}}}

func TestLoad_OnlineRefreshesCache(t *testing.T) {
	repos := newRepos(t)
	svc := NewFolderService(&fakeLister{folders: remote}, repos.Snapshots, nil)

	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Offline)
	assert.Equal(t, remote, res.Folders)

	cached, err := repos.Snapshots.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "a", cached[0].Files[0].ID)
}

func TestLoad_OfflineFallsBackToCache(t *testing.T) {
	repos := newRepos(t)
	require.NoError(t, repos.Snapshots.SaveAll(context.Background(), remote))

	svc := NewFolderService(&fakeLister{err: client.ErrUnavailable}, repos.Snapshots, nil)
	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, "g", res.Folders[0].ID)
}

func TestLoad_OfflineWithoutCache(t *testing.T) {
	repos := newRepos(t)
	svc := NewFolderService(&fakeLister{err: client.ErrUnavailable}, repos.Snapshots, nil)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
}

func TestLoad_OtherErrorsAreNotMasked(t *testing.T) {
	repos := newRepos(t)
	require.NoError(t, repos.Snapshots.SaveAll(context.Background(), remote))

	svc := NewFolderService(&fakeLister{err: client.ErrUnauthorized}, repos.Snapshots, nil)
	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestSave(t *testing.T) {
	repos := newRepos(t)
	svc := NewFolderService(&fakeLister{}, repos.Snapshots, nil)

	require.NoError(t, svc.Save(context.Background(), []models.Folder{{ID: "n", Name: "Nova"}}))
	cached, err := repos.Snapshots.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "n", cached[0].ID)

	require.NoError(t, repos.Close())
	require.Error(t, svc.Save(context.Background(), nil))
}
