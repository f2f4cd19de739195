package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"sharebox/config"
)

// FileBackend keeps every key in memory and persists the whole map as one JSON
// object to the configured data file.
type FileBackend struct {
	Mu     sync.RWMutex      // Guards values, loadErr and closed
	values map[string]string // Key -> raw stored string
	// loadErr is set when the data file exists but couldn't be parsed. Reads fail
	// with it until the next successful save replaces the file.
	loadErr error
	closed  bool

	filePath      string
	backupEnabled bool
	saveInterval  time.Duration

	saveTimer   *time.Timer // Timer for debounced saving
	savePending bool        // Flag to indicate if a save is queued
	saveMutex   sync.Mutex  // Mutex specifically for the save timer logic
}

// NewFileBackend creates a file backend and loads any existing data file.
func NewFileBackend(cfg *config.Config) (*FileBackend, error) {
	if cfg.DataFilePath == "" {
		return nil, fmt.Errorf("file backend requires a data file path")
	}
	fb := &FileBackend{
		values:        make(map[string]string),
		filePath:      cfg.DataFilePath,
		backupEnabled: cfg.EnableBackup,
		saveInterval:  cfg.SaveInterval,
	}

	log.Printf("INFO: Initializing file storage with file: %s", fb.filePath)
	if err := fb.Load(); err != nil {
		return nil, err
	}
	return fb, nil
}

// Load reads the data file into memory.
// A missing file is not an error. A file that can't be parsed is logged and
// remembered, so reads report it and the caller can fall back to defaults.
// Only an unreadable file (permissions, I/O) is returned as an error.
func (fb *FileBackend) Load() error {
	fb.Mu.Lock() // Acquire write lock for loading (modifies the map)
	defer fb.Mu.Unlock()

	fb.values = make(map[string]string)
	fb.loadErr = nil

	fileData, err := os.ReadFile(fb.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("INFO: Data file '%s' not found. Starting with empty storage.", fb.filePath)
			return nil
		}
		log.Printf("ERROR: Failed to read data file '%s': %v", fb.filePath, err)
		return fmt.Errorf("failed to read data file '%s': %w", fb.filePath, err)
	}

	var loaded map[string]string
	if err := json.Unmarshal(fileData, &loaded); err != nil {
		log.Printf("CRITICAL: Failed to parse JSON data from file '%s': %v. Reads will fail until the next save.", fb.filePath, err)
		fb.loadErr = fmt.Errorf("data file '%s' is corrupt: %w", fb.filePath, err)
		return nil
	}
	if loaded != nil {
		fb.values = loaded
	}

	log.Printf("INFO: Successfully loaded data file %s. Keys: %d", fb.filePath, len(fb.values))
	return nil
}

func (fb *FileBackend) Get(key string) (string, bool, error) {
	fb.Mu.RLock()
	defer fb.Mu.RUnlock()
	if fb.closed {
		return "", false, ErrClosed
	}
	if fb.loadErr != nil {
		return "", false, fb.loadErr
	}
	value, found := fb.values[key]
	return value, found, nil
}

func (fb *FileBackend) Set(key, value string) error {
	return fb.SetMany(map[string]string{key: value})
}

// SetMany applies all values and saves once.
func (fb *FileBackend) SetMany(values map[string]string) error {
	fb.Mu.Lock()
	if fb.closed {
		fb.Mu.Unlock()
		return ErrClosed
	}
	for k, v := range values {
		fb.values[k] = v
	}
	fb.Mu.Unlock()

	return fb.requestSave()
}

func (fb *FileBackend) Remove(key string) error {
	fb.Mu.Lock()
	if fb.closed {
		fb.Mu.Unlock()
		return ErrClosed
	}
	delete(fb.values, key)
	fb.Mu.Unlock()

	return fb.requestSave()
}

// persist saves the current state to the data file.
// This is the actual file writing logic, called directly or by the debounced mechanism.
func (fb *FileBackend) persist() error {
	fb.Mu.RLock() // Use Read Lock for marshalling the current state
	jsonData, err := json.MarshalIndent(fb.values, "", "  ")
	fb.Mu.RUnlock()
	if err != nil {
		log.Printf("ERROR: Failed to marshal storage state to JSON: %v", err)
		return err
	}

	// --- Atomic Write ---
	tempFilePath := fb.filePath + ".tmp"
	backupFilePath := fb.filePath + ".bak"

	// Write to temporary file first
	if err := os.WriteFile(tempFilePath, jsonData, 0644); err != nil {
		log.Printf("ERROR: Failed to write to temporary data file '%s': %v", tempFilePath, err)
		return err
	}

	if fb.backupEnabled {
		if _, err := os.Stat(fb.filePath); err == nil {
			if err := os.Rename(fb.filePath, backupFilePath); err != nil {
				log.Printf("WARN: Failed to rename '%s' to '%s' for backup: %v. Proceeding with save.", fb.filePath, backupFilePath, err)
			} else {
				log.Printf("DEBUG: Created backup file: %s", backupFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: Error checking status of data file '%s' before backup: %v", fb.filePath, err)
		}
	}

	// Atomically rename temporary file to the final destination
	if err := os.Rename(tempFilePath, fb.filePath); err != nil {
		log.Printf("ERROR: Failed to atomically rename temporary file '%s' to '%s': %v", tempFilePath, fb.filePath, err)
		_ = os.Remove(tempFilePath)
		return err
	}

	fb.Mu.Lock()
	fb.loadErr = nil // The corrupt file, if any, is now the backup
	fb.Mu.Unlock()

	log.Printf("DEBUG: Saved storage state to %s", fb.filePath)
	return nil
}

// requestSave is called after every write. With a zero interval it persists
// immediately and returns the result. Otherwise it (re)starts the debounce timer
// and returns nil; a failing debounced save is only logged.
func (fb *FileBackend) requestSave() error {
	fb.saveMutex.Lock()
	defer fb.saveMutex.Unlock()

	if fb.saveInterval <= 0 {
		return fb.persist()
	}

	// If a timer is already running, stop it (reset the debounce period)
	if fb.saveTimer != nil {
		fb.saveTimer.Stop()
	}
	fb.savePending = true

	fb.saveTimer = time.AfterFunc(fb.saveInterval, func() {
		fb.saveMutex.Lock()
		if !fb.savePending {
			fb.saveMutex.Unlock()
			return // Save was cancelled or already happened
		}
		fb.savePending = false
		fb.saveMutex.Unlock()

		log.Printf("INFO: Debounced save interval elapsed. Persisting storage...")
		if err := fb.persist(); err != nil {
			log.Printf("ERROR: Debounced persist failed: %v", err)
		}
	})
	log.Printf("DEBUG: Save requested. Debounce timer reset/started for %s.", fb.saveInterval)
	return nil
}

// Close stops the debounce timer and completes any pending save.
func (fb *FileBackend) Close() error {
	var needsFinalPersist bool

	fb.saveMutex.Lock()
	if fb.saveTimer != nil {
		fb.saveTimer.Stop()
		fb.saveTimer = nil
	}
	if fb.savePending {
		needsFinalPersist = true
		fb.savePending = false
	}
	fb.saveMutex.Unlock()

	var err error
	if needsFinalPersist {
		log.Printf("INFO: Performing final persist operation on close...")
		if err = fb.persist(); err != nil {
			log.Printf("ERROR: Final persist operation failed during close: %v", err)
		}
	}

	fb.Mu.Lock()
	fb.closed = true
	fb.Mu.Unlock()
	return err
}
