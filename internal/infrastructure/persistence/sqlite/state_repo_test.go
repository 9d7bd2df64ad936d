package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/bezier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openRepo(t *testing.T, path string) repository.StateRepository {
	t.Helper()
	repo, err := sqlite.OpenStateRepository(testContext(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestStateRepository_RoundTrip(t *testing.T) {
	ctx := testContext()
	repo := openRepo(t, filepath.Join(t.TempDir(), "bezier.db"))

	doc, err := repo.Load(ctx, repository.KeyBrowserState)
	require.NoError(t, err)
	assert.Nil(t, doc, "absent keys load as nil")

	require.NoError(t, repo.Save(ctx, repository.KeyBrowserState, []byte(`{"state":{},"version":0}`)))
	require.NoError(t, repo.Save(ctx, repository.KeyThemeState, []byte(`{"v":1}`)))
	require.NoError(t, repo.Save(ctx, repository.KeyThemeState, []byte(`{"v":2}`)))

	doc, err = repo.Load(ctx, repository.KeyThemeState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(doc))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{repository.KeyBrowserState, repository.KeyThemeState}, keys)

	require.NoError(t, repo.Delete(ctx, repository.KeyThemeState))
	require.NoError(t, repo.Delete(ctx, "never-saved"))
	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{repository.KeyBrowserState}, keys)
}

func TestStateRepository_SurvivesReopen(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "nested", "bezier.db")

	repo, err := sqlite.OpenStateRepository(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, repository.KeyExtensionState, []byte(`{"a":1}`)))
	require.NoError(t, repo.Close())

	reopened := openRepo(t, path)
	doc, err := reopened.Load(ctx, repository.KeyExtensionState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(doc))
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testContext(), "")
	require.Error(t, err)
}

func TestNewConnection_MigratesOnce(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "bezier.db")

	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	version, err := sqlite.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, db.Close())

	db, err = sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db), "re-running migrations is a no-op")
}
