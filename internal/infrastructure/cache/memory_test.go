package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	store.Set("k", "v", time.Minute)
	v, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	store.Set("k", "v2", time.Minute)
	v, _ = store.Get("k")
	assert.Equal(t, "v2", v)
}

func TestMemoryStore_Expired(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	store.Set("k", "v", -time.Second)
	_, ok := store.Get("k")
	assert.False(t, ok)
}

func TestMemoryStore_Results(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()
	id := uuid.New()

	_, ok, err := store.GetResult(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetResult(ctx, id, `{"decisions":[]}`))

	got, ok, err := store.GetResult(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"decisions":[]}`, got)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
