// Package modelcache is a content-addressed disk cache for rendered model
// output. Keys are a digest over the source files and render settings, so
// a cache hit means the rendered bytes are still valid.
package modelcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion is bumped whenever the payload format changes, which
// invalidates all prior entries.
const schemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Key computes the cache key for a render: the format name plus each
// input file's path and content. Inputs are hashed in sorted path order
// so the key does not depend on traversal order.
func Key(format string, inputs map[string][]byte) Digest {
	paths := make([]string, 0, len(inputs))
	for p := range inputs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	h := sha256.New()
	writeField(h, []byte(format))
	for _, p := range paths {
		writeField(h, []byte(p))
		writeField(h, inputs[p])
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

func writeField(w io.Writer, b []byte) {
	var n [8]byte
	v := uint64(len(b))
	for i := 0; i < 8; i++ {
		n[i] = byte(v >> (8 * i))
	}
	w.Write(n[:])
	w.Write(b)
}

// Payload is one cached render.
type Payload struct {
	Schema   uint16
	Format   string
	Rendered []byte
}

// Cache stores rendered output on disk, keyed by Digest. Safe for
// concurrent use. A nil *Cache is a no-op cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache under the user cache directory, honoring
// XDG_CACHE_HOME.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir initializes a cache rooted at dir.
func OpenDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "render", key.String()+".mp")
}

// Put writes a rendered payload. The write goes through a temp file and
// rename so readers never observe a partial entry.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. It returns false on a miss. Entries with a stale
// schema or the wrong format count as misses.
func (c *Cache) Get(key Digest, format string, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		// A truncated or corrupt entry is a miss, not a failure.
		return false, nil
	}
	if out.Schema != schemaVersion || out.Format != format {
		return false, nil
	}
	return true, nil
}
