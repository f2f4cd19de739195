package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sharebox/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a config pointing to a temp data file
func createTestConfig(t *testing.T, saveInterval time.Duration) *config.Config {
	return &config.Config{
		StorageDriver: config.StorageFile,
		DataFilePath:  filepath.Join(t.TempDir(), "test_data.json"),
		SaveInterval:  saveInterval,
		EnableBackup:  true, // Test backup creation
	}
}

// setupTestFileBackend creates a file backend and closes it when the test ends.
func setupTestFileBackend(t *testing.T, saveInterval time.Duration) (*FileBackend, *config.Config) {
	cfg := createTestConfig(t, saveInterval)
	fb, err := NewFileBackend(cfg)
	require.NoError(t, err, "NewFileBackend failed during setup")
	t.Cleanup(func() { _ = fb.Close() })
	return fb, cfg
}

// Helper to write content directly to the data file for testing Load
func writeTestDataFile(t *testing.T, cfg *config.Config, content string) {
	err := os.WriteFile(cfg.DataFilePath, []byte(content), 0644)
	require.NoError(t, err, "Failed to write test data file")
}

// Helper to read content directly from the data file for verifying persist
func readTestDataFile(t *testing.T, cfg *config.Config) string {
	data, err := os.ReadFile(cfg.DataFilePath)
	require.NoError(t, err, "Failed to read test data file")
	return string(data)
}

// --- Load Tests ---

func TestFileBackend_Load_FileNotFound(t *testing.T) {
	fb, cfg := setupTestFileBackend(t, 0)

	_, err := os.Stat(cfg.DataFilePath)
	require.True(t, os.IsNotExist(err), "Data file should not exist before the first save")

	value, found, err := fb.Get("beusharebox_products")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestFileBackend_Load_ValidFile(t *testing.T) {
	cfg := createTestConfig(t, 0)
	writeTestDataFile(t, cfg, `{
		"beusharebox_products": "[{\"id\":\"p1\"}]",
		"beusharebox_user": "{\"name\":\"Alice\"}"
	}`)

	fb, err := NewFileBackend(cfg)
	require.NoError(t, err)
	defer fb.Close()

	value, found, err := fb.Get("beusharebox_products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"p1"}]`, value)

	value, found, err = fb.Get("beusharebox_user")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"name":"Alice"}`, value)

	_, found, err = fb.Get("beusharebox_filters")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileBackend_Load_InvalidJSON(t *testing.T) {
	cfg := createTestConfig(t, 0)
	corrupt := `{"beusharebox_products": "[]",` // Missing closing brace
	writeTestDataFile(t, cfg, corrupt)

	fb, err := NewFileBackend(cfg)
	require.NoError(t, err, "A corrupt data file must not stop the backend from opening")
	defer fb.Close()

	_, _, err = fb.Get("beusharebox_products")
	require.Error(t, err, "Reads should report the corrupt file")
	assert.Contains(t, err.Error(), "corrupt")

	// The first save replaces the corrupt file and keeps it as the backup.
	require.NoError(t, fb.Set("beusharebox_products", "[]"))
	value, found, err := fb.Get("beusharebox_products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", value)

	backup, err := os.ReadFile(cfg.DataFilePath + ".bak")
	require.NoError(t, err)
	assert.Equal(t, corrupt, string(backup))
}

// --- Persist / Save Tests ---

func TestFileBackend_Persist(t *testing.T) {
	fb, cfg := setupTestFileBackend(t, 0)

	// --- First save: creates the file ---
	require.NoError(t, fb.Set("k1", "first"))
	assert.Contains(t, readTestDataFile(t, cfg), `"first"`)

	// --- Second save: should trigger backup ---
	require.NoError(t, fb.SetMany(map[string]string{"k1": "second", "k2": "other"}))

	fileContent := readTestDataFile(t, cfg)
	assert.Contains(t, fileContent, `"second"`)
	assert.Contains(t, fileContent, `"other"`)
	assert.NotContains(t, fileContent, `"first"`)

	backupData, err := os.ReadFile(cfg.DataFilePath + ".bak")
	require.NoError(t, err, "Backup file should exist after second save")
	assert.Contains(t, string(backupData), `"first"`, "Backup should hold the state before the second save")
	assert.NotContains(t, string(backupData), `"other"`)

	_, err = os.Stat(cfg.DataFilePath + ".tmp")
	assert.True(t, os.IsNotExist(err), "Temporary file should be renamed away")
}

func TestFileBackend_ReloadAfterSave(t *testing.T) {
	fb, cfg := setupTestFileBackend(t, 0)
	require.NoError(t, fb.Set("beusharebox_user", `{"name":"Bob"}`))
	require.NoError(t, fb.Set("gone", "x"))
	require.NoError(t, fb.Remove("gone"))
	require.NoError(t, fb.Close())

	reopened, err := NewFileBackend(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get("beusharebox_user")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"name":"Bob"}`, value)

	_, found, err = reopened.Get("gone")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileBackend_SaveFailureIsReturned(t *testing.T) {
	cfg := createTestConfig(t, 0)
	cfg.DataFilePath = filepath.Join(t.TempDir(), "missing-dir", "data.json")
	fb, err := NewFileBackend(cfg)
	require.NoError(t, err)
	defer fb.Close()

	err = fb.Set("k", "v")
	assert.Error(t, err, "Write-through mode should surface write failures to the caller")
}

func TestFileBackend_RequestSave_Debounced(t *testing.T) {
	saveInterval := 30 * time.Millisecond
	fb, cfg := setupTestFileBackend(t, saveInterval)

	require.NoError(t, fb.Set("k1", "one"))
	time.Sleep(saveInterval / 3) // Wait less than the interval
	require.NoError(t, fb.Set("k2", "two")) // Resets the timer

	_, err := os.Stat(cfg.DataFilePath)
	assert.True(t, os.IsNotExist(err), "Nothing should be written before the debounce interval expires")

	// Values are visible immediately even though the file isn't written yet.
	value, found, err := fb.Get("k2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "two", value)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(cfg.DataFilePath)
		return err == nil && len(data) > 0
	}, time.Second, saveInterval/2, "Debounced save should eventually write the file")

	fileContent := readTestDataFile(t, cfg)
	assert.Contains(t, fileContent, `"one"`)
	assert.Contains(t, fileContent, `"two"`)
}

func TestFileBackend_CloseFlushesPendingSave(t *testing.T) {
	cfg := createTestConfig(t, time.Hour) // Never fires on its own during the test
	fb, err := NewFileBackend(cfg)
	require.NoError(t, err)

	require.NoError(t, fb.Set("k", "pending"))
	_, err = os.Stat(cfg.DataFilePath)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, fb.Close())
	assert.Contains(t, readTestDataFile(t, cfg), `"pending"`)

	_, _, err = fb.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, fb.Set("k", "v"), ErrClosed)
}

func TestOpen_SelectsBackend(t *testing.T) {
	cfg := createTestConfig(t, 0)
	b, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)
	require.NoError(t, b.Close())

	b, err = Open(&config.Config{StorageDriver: config.StorageMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	b, err = Open(&config.Config{StorageDriver: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "kv.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = Open(&config.Config{StorageDriver: "cookie"})
	assert.Error(t, err)
}
