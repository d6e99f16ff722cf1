package sqlstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/snapdex/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// exerciseStore runs the shared kv.Store contract against an opened store.
func exerciseStore(t *testing.T, store kv.Store, prefix string) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, prefix+"missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Put(ctx, prefix+"cards", []byte(`[{"id":"a"}]`)))
	got, err := store.Get(ctx, prefix+"cards")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, store.Put(ctx, prefix+"cards", []byte(`[]`)))
	got, err = store.Get(ctx, prefix+"cards")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, store.Put(ctx, prefix+"empty", nil))
	got, err = store.Get(ctx, prefix+"empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	for want := int64(1); want <= 3; want++ {
		n, err := store.Increment(ctx, prefix+"counter")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapdex.db")

	store, err := OpenSQLite(ctx, path, testLogger())
	require.NoError(t, err)
	exerciseStore(t, store, "")
	require.NoError(t, store.Close())

	// Values and counters survive reopening the file, and migrations are idempotent.
	reopened, err := OpenSQLite(ctx, path, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "cards")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	n, err := reopened.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	store, err := OpenSQLite(context.Background(), ":memory:", testLogger())
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store, "")
}

func TestOpen_InvalidArguments(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ", testLogger())
	assert.Error(t, err)

	_, err = OpenPostgres(context.Background(), "", testLogger())
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("SNAPDEX_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SNAPDEX_TEST_DATABASE_URL not set")
	}

	store, err := OpenPostgres(context.Background(), url, testLogger())
	require.NoError(t, err)
	defer store.Close()

	// A unique prefix keeps reruns against the same database independent.
	exerciseStore(t, store, t.Name()+"-"+filepath.Base(t.TempDir())+"/")
}
