package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/stretchr/testify/require"
)

// NewMemoryFS returns an empty in-memory filesystem.
func NewMemoryFS() types.FS {
	return filesystem.NewMemory()
}

// WriteTree writes every rel -> content pair below root on fsys.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}
