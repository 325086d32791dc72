package preferences

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "filters.yaml"))

	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.DefaultFilterState(), got)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "filters.yaml")
	store := NewFileStore(path)

	state := model.DefaultFilterState().
		Apply(model.CategoryRegion, "eu-west-1").
		Apply(model.CategoryRegion, "us-west-2").
		ToggleVisibility().
		WithDefaults(model.DefaultFilters{Environment: "production"})

	require.NoError(t, store.Save(ctx, state))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestFileStorePartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	content := `applied_filters:
  - category_id: service
    values: [database]
is_visible: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := NewFileStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.AppliedFilter{{CategoryID: "service", Values: []string{"database"}}}, got.AppliedFilters)
	assert.False(t, got.IsVisible)
	assert.Equal(t, model.DefaultFilterBehavior(), got.Behavior)
	assert.Equal(t, "running", got.DefaultFilters.State)
}

func TestFileStoreInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::invalid"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())

	assert.Error(t, err)
}

func TestFileStoreSkipsSaveWhenPersistenceDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	store := NewFileStore(path)

	behavior := model.DefaultFilterBehavior()
	behavior.PersistFilters = false
	state := model.DefaultFilterState().WithBehavior(behavior)

	require.NoError(t, store.Save(context.Background(), state))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultFilterState(), got)

	state := model.DefaultFilterState().Apply(model.CategoryWasteLevel, "critical")
	require.NoError(t, store.Save(ctx, state))

	// later changes to the caller's copy do not leak into the store
	state.AppliedFilters[0].Values[0] = "stopped"

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"running"}, got.Values(model.CategoryState))
	assert.True(t, got.IsApplied(model.CategoryWasteLevel, "critical"))
}

func TestMemoryStoreSkipsSaveWhenPersistenceDisabled(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	behavior := model.DefaultFilterBehavior()
	behavior.PersistFilters = false
	require.NoError(t, store.Save(ctx, model.DefaultFilterState().ClearAll().WithBehavior(behavior)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultFilterState(), got)
}
