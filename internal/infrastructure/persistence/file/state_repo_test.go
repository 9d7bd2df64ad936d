package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/infrastructure/mozlz4"
	"github.com/bnema/bezier/internal/infrastructure/persistence/file"
	"github.com/bnema/bezier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestStateRepository_RoundTrip(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	repo, err := file.NewStateRepository(dir)
	require.NoError(t, err)

	doc, err := repo.Load(ctx, repository.KeyBrowserState)
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, repo.Save(ctx, repository.KeyBrowserState, []byte(`{"state":{"tabs":[]},"version":0}`)))
	require.NoError(t, repo.Save(ctx, repository.KeyBrowserState, []byte(`{"state":{},"version":0}`)))

	doc, err = repo.Load(ctx, repository.KeyBrowserState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{},"version":0}`, string(doc))

	raw, err := os.ReadFile(filepath.Join(dir, repository.KeyBrowserState+".jsonlz4"))
	require.NoError(t, err)
	assert.Equal(t, mozlz4.Magic, raw[:8], "documents are stored with mozlz4 framing")

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{repository.KeyBrowserState}, keys, "temporary files are not listed")

	require.NoError(t, repo.Delete(ctx, repository.KeyBrowserState))
	require.NoError(t, repo.Delete(ctx, repository.KeyBrowserState))
	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStateRepository_CorruptFile(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	repo, err := file.NewStateRepository(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, repository.KeyThemeState+".jsonlz4"), []byte("garbage"), 0o600))

	_, err = repo.Load(ctx, repository.KeyThemeState)
	require.Error(t, err)
}

func TestStateRepository_RejectsPathKeys(t *testing.T) {
	repo, err := file.NewStateRepository(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, repo.Save(testContext(), key, []byte("{}")), key)
	}
}
