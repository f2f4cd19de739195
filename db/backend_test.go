package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runBackendContract exercises the behaviour every Backend must share.
func runBackendContract(t *testing.T, b Backend) {
	t.Helper()

	t.Run("Missing key", func(t *testing.T) {
		value, found, err := b.Get("absent")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("Set then Get", func(t *testing.T) {
		require.NoError(t, b.Set("beusharebox_user", `{"name":"Alice"}`))
		value, found, err := b.Get("beusharebox_user")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"name":"Alice"}`, value)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, b.Set("k", "v1"))
		require.NoError(t, b.Set("k", "v2"))
		value, _, err := b.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v2", value)
	})

	t.Run("SetAll", func(t *testing.T) {
		require.NoError(t, SetAll(b, map[string]string{"a": "1", "b": "2"}))
		for k, want := range map[string]string{"a": "1", "b": "2"} {
			value, found, err := b.Get(k)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, want, value)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, b.Set("tmp", "x"))
		require.NoError(t, b.Remove("tmp"))
		_, found, err := b.Get("tmp")
		require.NoError(t, err)
		assert.False(t, found)

		assert.NoError(t, b.Remove("never-set"), "Removing a missing key is not an error")
	})

	t.Run("Empty value is stored", func(t *testing.T) {
		require.NoError(t, b.Set("empty", ""))
		value, found, err := b.Get("empty")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", value)
	})
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	runBackendContract(t, b)

	require.NoError(t, b.Close())
	_, _, err := b.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Set("k", "v"), ErrClosed)
	assert.ErrorIs(t, b.Remove("k"), ErrClosed)
}

func TestFileBackend_Contract(t *testing.T) {
	fb, _ := setupTestFileBackend(t, 0)
	runBackendContract(t, fb)
}

func TestSQLiteBackend(t *testing.T) {
	b, err := NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	runBackendContract(t, b)

	require.NoError(t, b.Close())
	_, _, err = b.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	require.NoError(t, b.SetMany(map[string]string{"beusharebox_products": "[]", "beusharebox_filters": "{}"}))
	require.NoError(t, b.Close())

	reopened, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get("beusharebox_products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", value)
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("SHAREBOX_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SHAREBOX_TEST_REDIS_ADDR not set, skipping Redis backend test")
	}

	b, err := NewRedisBackend(addr, "sharebox-test:"+t.Name()+":")
	require.NoError(t, err)
	defer b.Close()

	t.Cleanup(func() {
		for _, k := range []string{"beusharebox_user", "k", "a", "b", "empty"} {
			_ = b.Remove(k)
		}
	})
	runBackendContract(t, b)
}

func TestNewRedisBackend_Unreachable(t *testing.T) {
	_, err := NewRedisBackend("127.0.0.1:1", "")
	assert.Error(t, err)
}

// failingBackend fails every write, for callers' error-path tests.
type failingBackend struct{ *MemoryBackend }

func (f *failingBackend) Set(string, string) error { return errors.New("disk full") }

func TestSetAll_FallsBackToSet(t *testing.T) {
	f := &failingBackend{MemoryBackend: NewMemoryBackend()}
	// Wrapping leaves only the Backend methods, so SetMany is not visible.
	var b Backend = struct{ Backend }{f}

	err := SetAll(b, map[string]string{"k": "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
