package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/adapters/fs"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

func newRepo(t *testing.T, cfg fs.Config) *fs.Repository {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "vault")
	}
	repo := fs.NewRepository(cfg)
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestRepository_LoadStore(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, fs.Config{})

	_, err := repo.Load(ctx, "records")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, repo.Store(ctx, "records", []byte(`[{"id":"a"}]`)))
	data, err := repo.Load(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))

	_, err = os.Stat(filepath.Join(repo.Path, "records.json"))
	assert.NoError(t, err)

	state := repo.State().(fs.RepositoryState)
	assert.Equal(t, 1, state.Writes)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "blobstore", repo.ComponentType())
}

func TestRepository_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, fs.Config{})

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, repo.Store(ctx, key, []byte("x")), "key %q", key)
	}
}

func TestRepository_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte("[]"), 0644))

	repo := newRepo(t, fs.Config{Path: dir, ReadOnly: true})

	data, err := repo.Load(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.ErrorIs(t, repo.Store(ctx, "records", []byte("[1]")), core.ErrReadOnly)
}

func TestRepository_MustExist(t *testing.T) {
	repo := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
	assert.Error(t, repo.Initialize(context.Background()))
}

func TestRepository_WatchReportsExternalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := newRepo(t, fs.Config{Debounce: 10 * time.Millisecond})
	events, err := repo.Watch(ctx, "records")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return repo.State().(fs.RepositoryState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	// Another process writing the same blob.
	other := fs.NewRepository(fs.Config{Path: repo.Path})
	require.NoError(t, other.Store(ctx, "records", []byte("[]")))
	// Unrelated keys are filtered out.
	require.NoError(t, other.Store(ctx, "other", []byte("[]")))

	select {
	case e := <-events:
		assert.Equal(t, "records", e.Key)
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watch event")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}
