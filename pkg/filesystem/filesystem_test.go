package filesystem

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	err = fs.MkdirAll(subDir, 0755)
	require.NoError(t, err)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	renamed := filepath.Join(tmpDir, "renamed.txt")
	require.NoError(t, fs.Rename(testFile, renamed))

	err = fs.RemoveAll(renamed)
	require.NoError(t, err)
	_, err = fs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestOSWriteFileReplaces(t *testing.T) {
	fs := NewOS()
	path := filepath.Join(t.TempDir(), "out.zip")

	require.NoError(t, fs.WriteFile(path, []byte("first"), 0644))
	require.NoError(t, fs.WriteFile(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file is left behind")
}

func TestOSWriteFileConcurrentWriters(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")
	sibling := path + ".tmp"
	require.NoError(t, os.WriteFile(sibling, []byte("unrelated"), 0644))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, fs.WriteFile(path, []byte("archive"), 0644))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "archive", string(data))

	data, err = os.ReadFile(sibling)
	require.NoError(t, err)
	assert.Equal(t, "unrelated", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryReadDirSorted(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/tpl", 0755))
	for _, name := range []string{"b.typ", "a.typ", "C.typ"} {
		require.NoError(t, fs.WriteFile("/tpl/"+name, nil, 0644))
	}

	entries, err := fs.ReadDir("/tpl")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"C.typ", "a.typ", "b.typ"}, names)
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("/tpl/fonts", 0755))

	_, err := fs.ReadFile("/tpl/fonts")
	assert.Error(t, err)
}

func TestCopyDir(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(in, "test", "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "my-temporary-note.txt"), []byte("Brian was here. Briefly."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "test", "my-temporary-other-note.txt"), []byte("Brian was here. Briefly."), 0644))

	out := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, CopyDir(NewOS(), in, out))

	assert.FileExists(t, filepath.Join(out, "test", "my-temporary-other-note.txt"))
	assert.DirExists(t, filepath.Join(out, "test", "src"))
	assert.FileExists(t, filepath.Join(out, "my-temporary-note.txt"))

	data, err := os.ReadFile(filepath.Join(out, "my-temporary-note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Brian was here. Briefly.", string(data))
}

func TestCopyDirInMemory(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("/cache/preview/pkg/1.0.0/lib", 0755))
	require.NoError(t, fs.WriteFile("/cache/preview/pkg/1.0.0/typst.toml", []byte("[package]"), 0644))
	require.NoError(t, fs.WriteFile("/cache/preview/pkg/1.0.0/lib/a.typ", []byte("= A"), 0644))

	require.NoError(t, CopyDir(fs, "/cache/preview/pkg/1.0.0", "/tpl/.dependencies/preview/pkg/1.0.0"))

	data, err := fs.ReadFile("/tpl/.dependencies/preview/pkg/1.0.0/lib/a.typ")
	require.NoError(t, err)
	assert.Equal(t, "= A", string(data))
}
