package testutil

import (
	"io/fs"
	"sync"

	"github.com/arthur-debert/tmplfs/pkg/types"
)

// CountingFS wraps a types.FS and counts Stat and ReadFile calls per path.
type CountingFS struct {
	types.FS

	mu    sync.Mutex
	stats map[string]int
	reads map[string]int
}

// NewCountingFS wraps inner.
func NewCountingFS(inner types.FS) *CountingFS {
	return &CountingFS{
		FS:    inner,
		stats: make(map[string]int),
		reads: make(map[string]int),
	}
}

// Stat implements types.FS
func (c *CountingFS) Stat(name string) (fs.FileInfo, error) {
	c.mu.Lock()
	c.stats[name]++
	c.mu.Unlock()
	return c.FS.Stat(name)
}

// ReadFile implements types.FS
func (c *CountingFS) ReadFile(name string) ([]byte, error) {
	c.mu.Lock()
	c.reads[name]++
	c.mu.Unlock()
	return c.FS.ReadFile(name)
}

// Stats returns how often name was stat'ed.
func (c *CountingFS) Stats(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats[name]
}

// Reads returns how often name was read.
func (c *CountingFS) Reads(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads[name]
}
