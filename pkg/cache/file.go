package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps API responses on disk so repeated CLI invocations reuse
// them. Entries are JSON envelopes carrying the payload and its expiry,
// sharded into subdirectories by key digest so a large taxonomy cache does
// not pile thousands of files into one directory.
type FileCache struct {
	dir string
}

// NewFileCache opens (creating if needed) a cache rooted at dir.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope. Expires is a unix timestamp, zero for
// entries stored without a TTL.
type fileEntry struct {
	Payload []byte `json:"payload"`
	Expires int64  `json:"expires,omitempty"`
}

// Get reads an entry, expiring it on access: a stale or unreadable file is
// removed and reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		os.Remove(path)
		return nil, false, nil
	}
	if entry.Expires != 0 && time.Now().Unix() >= entry.Expires {
		os.Remove(path)
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

// Set stores an entry. The write goes through a temp file and rename, so a
// concurrent Get never sees a partial envelope.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Payload: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl).Unix()
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cache-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes an entry. Deleting an absent key is a no-op.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing; the cache holds no open handles between calls.
func (c *FileCache) Close() error { return nil }

// path shards entries by the first byte of the key digest, e.g.
// <dir>/a3/<digest>.json.
func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	digest := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, digest[:2], digest[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
