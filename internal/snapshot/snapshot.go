// Package snapshot persists validated manifests between runs. Entries
// are keyed by the sha256 of the manifest bytes, so any edit misses the
// cache and a schema bump invalidates every stored payload at once.
package snapshot

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the Payload layout changes.
const schemaVersion uint16 = 1

// Digest is a sha256 content hash used as cache key.
type Digest [32]byte

// Store is a disk cache of manifest payloads. Safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache at the standard location: $XDG_CACHE_HOME
// or ~/.cache, plus the application name.
func Open(app string) (*Store, error) {
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
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

func (s *Store) pathFor(key Digest) string {
	return filepath.Join(s.dir, "manifests", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload under key, replacing the entry atomically.
func (s *Store) Put(key Digest, payload *Payload) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload stored under key. A missing entry is not an
// error; it reports (false, nil).
func (s *Store) Get(key Digest, out *Payload) (bool, error) {
	if s == nil {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// Clean drops the whole cache directory. The directory is renamed
// first so a concurrent reader never sees a half-deleted tree.
func (s *Store) Clean() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
