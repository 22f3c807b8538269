package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache is a file-based cache with a TTL. The builder stores parsed article
// metadata in it so unchanged corpus files are not re-parsed.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist. A zero ttl never expires.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// FileKey identifies a file revision by path, size and modification time.
// variant separates entries produced under different parse settings.
func FileKey(path string, size int64, modTime time.Time, variant string) string {
	return strings.Join([]string{
		path,
		fmt.Sprintf("%d", size),
		fmt.Sprintf("%d", modTime.UnixNano()),
		variant,
	}, "|")
}

// key generates a SHA256 hash of the key to use as a filename.
func (c *Cache) key(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash)
}

// Get returns the data and true if the item is found and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(key))

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	return data, true
}

// Set adds an item to the cache.
func (c *Cache) Set(key string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(key))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
