package fmtcache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// Digest - фиксированный 256 битный хеш содержимого (совместим с source.File.Hash)
type Digest [32]byte

// DiskCache хранит вердикты форматирования по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Payload stores the formatting verdict for one content digest.
type Payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Dialect that produced the verdict ("jsonc" or "yaml")
	Dialect string

	// Size of the content in bytes, cross-checked on hit
	Size uint32

	// Formatted reports that the content is already canonical
	Formatted bool
}

// NewPayload builds a cache entry for content of the given length.
func NewPayload(dialect string, size int, formatted bool) (*Payload, error) {
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		return nil, fmt.Errorf("content size overflow: %w", err)
	}
	return &Payload{Schema: schemaVersion, Dialect: dialect, Size: n, Formatted: formatted}, nil
}

// Fresh reports whether the payload matches the current schema, the dialect
// and the content length it was recorded for.
func (p *Payload) Fresh(dialect string, size int) bool {
	if p == nil || p.Schema != schemaVersion {
		return false
	}
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		return false
	}
	return p.Dialect == dialect && p.Size == n
}

// Open initializes and returns a disk cache at the standard location.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory on disk.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости и очистки записи лежат в подкаталоге "files".
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// после переименования удалять нечего
	defer func() { _ = os.Remove(f.Name()) }()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after schema changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
