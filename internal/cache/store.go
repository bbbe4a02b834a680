package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const cacheFileExtension = ".json"

const bytesPerMB = 1024 * 1024

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// Store is implemented by every cache backend.
type Store interface {
	Get(key string) (*Entry, error)
	Set(key string, data json.RawMessage) error
	Delete(key string) error
	Clear() error
	Count() (int, error)
	IsEnabled() bool
}

// FileStore keeps entries as JSON files in a directory. Safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int
	maxSizeMB  int // 0 = unlimited

	mu sync.RWMutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file store, creating directory if needed.
// A disabled store is returned as-is and rejects every operation.
func NewFileStore(directory string, enabled bool, ttlSeconds, maxSizeMB int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
		maxSizeMB:  maxSizeMB,
	}, nil
}

// Get returns the entry for key, ErrCacheNotFound, or ErrCacheExpired.
// Expired files are removed on read.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	filePath := s.keyToFilePath(key)
	data, err := os.ReadFile(filePath)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(filePath)
		s.mu.Unlock()
		return nil, ErrCacheExpired
	}

	return &entry, nil
}

// Set writes data under key, replacing any existing entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entryData, err := json.Marshal(NewEntry(key, data, s.ttlSeconds))
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := s.keyToFilePath(key)
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return s.enforceSizeLimitLocked()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every cache file in the directory.
func (s *FileStore) Clear() error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.cacheFilesLocked()
	if err != nil {
		return err
	}
	for _, f := range files {
		if removeErr := os.Remove(f.path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(f.path), removeErr)
		}
	}
	return nil
}

// CleanupExpired removes expired entries and returns how many were removed.
func (s *FileStore) CleanupExpired() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.cacheFilesLocked()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range files {
		data, readErr := os.ReadFile(f.path)
		if readErr != nil {
			continue
		}
		var entry Entry
		if json.Unmarshal(data, &entry) != nil {
			continue
		}
		if entry.IsExpired() && os.Remove(f.path) == nil {
			removed++
		}
	}
	return removed, nil
}

// Size returns the total size of cache files in bytes.
func (s *FileStore) Size() (int64, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.cacheFilesLocked()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	return total, nil
}

// Count returns the number of entries, including expired ones not yet removed.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.cacheFilesLocked()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// IsEnabled reports whether the store accepts operations.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the TTL in seconds applied to new entries.
func (s *FileStore) TTL() int {
	return s.ttlSeconds
}

type cacheFile struct {
	path    string
	size    int64
	modUnix int64
}

func (s *FileStore) cacheFilesLocked() ([]cacheFile, error) {
	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	files := make([]cacheFile, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != cacheFileExtension {
			continue
		}
		info, infoErr := de.Info()
		if infoErr != nil {
			continue
		}
		files = append(files, cacheFile{
			path:    filepath.Join(s.directory, de.Name()),
			size:    info.Size(),
			modUnix: info.ModTime().UnixNano(),
		})
	}
	return files, nil
}

// enforceSizeLimitLocked drops the oldest files until the store fits maxSizeMB.
func (s *FileStore) enforceSizeLimitLocked() error {
	if s.maxSizeMB <= 0 {
		return nil
	}

	files, err := s.cacheFilesLocked()
	if err != nil {
		return err
	}

	limit := int64(s.maxSizeMB) * bytesPerMB
	var total int64
	for _, f := range files {
		total += f.size
	}
	if total <= limit {
		return nil
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modUnix < files[j].modUnix })
	for _, f := range files {
		if total <= limit {
			break
		}
		if os.Remove(f.path) == nil {
			total -= f.size
		}
	}
	return nil
}

func (s *FileStore) keyToFilePath(key string) string {
	safeKey := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.directory, safeKey+cacheFileExtension)
}
