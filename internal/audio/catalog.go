// Package audio serves pre-generated pronunciation clips for chunks.
// Synthesis happens offline; at runtime this is a read-only cache of
// mp3 files keyed by sanitized chunk label.
package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoAudio is returned when no clip exists for a chunk.
var ErrNoAudio = errors.New("no audio for chunk")

// Format is the container format of every clip in the catalog.
const Format = "mp3"

// Catalog is a disk-backed collection of pronunciation clips.
type Catalog struct {
	dir   string
	mu    sync.RWMutex
	cache map[string][]byte
}

// NewCatalog creates a Catalog over the given directory. The directory
// may be empty or missing; lookups then simply report ErrNoAudio.
func NewCatalog(dir string) *Catalog {
	return &Catalog{
		dir:   dir,
		cache: make(map[string][]byte),
	}
}

// FileName returns the clip file name for a chunk label.
func FileName(chunk string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(chunk) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String() + "." + Format
}

// Get returns the base64-encoded clip for a chunk, reading from disk
// on first access and from memory afterwards.
func (c *Catalog) Get(chunk string) (string, error) {
	name := FileName(chunk)

	c.mu.RLock()
	data, ok := c.cache[name]
	c.mu.RUnlock()

	if !ok {
		raw, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				return "", ErrNoAudio
			}
			return "", fmt.Errorf("read clip %s: %w", name, err)
		}

		c.mu.Lock()
		c.cache[name] = raw
		c.mu.Unlock()
		data = raw
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// Warm loads every clip in the directory into memory. Missing
// directory is not an error.
func (c *Catalog) Warm() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read audio dir: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "."+Format) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			return count, fmt.Errorf("read clip %s: %w", entry.Name(), err)
		}
		c.mu.Lock()
		c.cache[entry.Name()] = data
		c.mu.Unlock()
		count++
	}
	return count, nil
}

// Dir returns the catalog directory, for HTTP file serving.
func (c *Catalog) Dir() string {
	return c.dir
}
