package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/adapters/memory"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

func TestRepository_LoadStore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	_, err := repo.Load(ctx, "k")
	assert.ErrorIs(t, err, core.ErrNotFound)

	in := []byte("[]")
	require.NoError(t, repo.Store(ctx, "k", in))
	in[0] = 'x'

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got), "stored value must not alias caller buffer")
}

func TestRepository_SeedReadOnly(t *testing.T) {
	ctx := context.Background()
	repo := memory.Seed(map[string][]byte{"k": []byte("[]")}, true)

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
	assert.ErrorIs(t, repo.Store(ctx, "k", nil), core.ErrReadOnly)
}

func TestRepository_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := memory.NewRepository()

	events, err := repo.Watch(ctx, "k")
	require.NoError(t, err)

	require.NoError(t, repo.Store(ctx, "k", []byte("1")))
	require.NoError(t, repo.Store(ctx, "other", []byte("1")))
	require.NoError(t, repo.Store(ctx, "k", []byte("2")))

	assert.Equal(t, core.EventCreate, (<-events).Type)
	assert.Equal(t, core.EventModify, (<-events).Type)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}
