package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-bit/highlight/internal/types"
)

func sampleState() *types.AppState {
	params := types.EmptySessionsSearchParams()
	params.HideViewed = true
	params.Environments = []string{"production"}
	return &types.AppState{
		ProjectID:    "1",
		SegmentID:    types.LiveSegmentID,
		SearchParams: params,
		ShowStarred:  true,
		Player:       types.PlayerConfig{AutoPlaySessions: true},
	}
}

func TestFileAppStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileAppStateStore(filepath.Join(t.TempDir(), "nested", "state.json"))

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, isZeroAppState(empty))

	require.NoError(t, store.Save(ctx, sampleState()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), loaded)

	assert.Error(t, store.Save(ctx, nil))
}

func TestFileAppStateStoreRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := NewFileAppStateStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestBboltRepositoryAppState(t *testing.T) {
	ctx := context.Background()
	repo, err := NewBboltRepository(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer repo.Close()
	assert.Equal(t, RepositoryBackendBbolt, repo.Backend())

	state, err := repo.AppState().Load(ctx)
	require.NoError(t, err)
	assert.True(t, isZeroAppState(state))

	require.NoError(t, repo.AppState().Save(ctx, sampleState()))
	loaded, err := repo.AppState().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), loaded)
}

func TestOpenRepositoryBackends(t *testing.T) {
	dir := t.TempDir()
	paths := RepositoryPaths{
		AppStatePath: filepath.Join(dir, "state.json"),
		DBPath:       filepath.Join(dir, "state.db"),
	}

	repo, err := OpenRepository(paths, "file")
	require.NoError(t, err)
	assert.Equal(t, RepositoryBackendFile, repo.Backend())
	require.NoError(t, repo.Close())

	repo, err = OpenRepository(paths, "")
	require.NoError(t, err)
	assert.Equal(t, RepositoryBackendBbolt, repo.Backend())
	require.NoError(t, repo.Close())

	_, err = OpenRepository(RepositoryPaths{}, "bbolt")
	assert.Error(t, err)
	_, err = OpenRepository(paths, "sqlite")
	assert.Error(t, err)
}

func TestSeedRepositoryFromFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	paths := RepositoryPaths{
		AppStatePath: filepath.Join(dir, "state.json"),
		DBPath:       filepath.Join(dir, "state.db"),
	}
	require.NoError(t, NewFileAppStateStore(paths.AppStatePath).Save(ctx, sampleState()))

	repo, err := NewBboltRepository(paths.DBPath)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, SeedRepositoryFromFiles(ctx, repo, paths))

	loaded, err := repo.AppState().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", loaded.ProjectID)

	changed := sampleState()
	changed.ProjectID = "2"
	require.NoError(t, repo.AppState().Save(ctx, changed))
	require.NoError(t, SeedRepositoryFromFiles(ctx, repo, paths))
	loaded, err = repo.AppState().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", loaded.ProjectID, "existing state is not overwritten")
}

func TestFileKeymapStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileKeymapStore(filepath.Join(t.TempDir(), "keymap.json"))

	keymap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, keymap.Bindings)

	require.NoError(t, store.Save(ctx, &types.Keymap{Bindings: map[string]string{"feed.more": "ctrl+l"}}))
	keymap, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ctrl+l", keymap.Bindings["feed.more"])
	assert.Error(t, store.Save(ctx, nil))
}
