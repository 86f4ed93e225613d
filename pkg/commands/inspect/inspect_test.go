// pkg/commands/inspect/inspect_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS, zip fixtures
// PURPOSE: Test archive listing through the archive store

package inspect_test

import (
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/commands/inspect"
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectListsArchive(t *testing.T) {
	archive := testutil.BuildZip(t,
		testutil.FileEntry("typst.toml", testutil.Manifest("invoice", "2.0.0", "")),
		testutil.FileEntry("main.typ", "= Invoice"),
		testutil.ZipEntry{Name: "fonts/", Method: 0},
		testutil.FileEntry("fonts/Body.TTF", "font"),
		testutil.FileEntry(".dependencies/preview/util/0.1.0/lib.typ", "#let x = 1"),
		testutil.FileEntry(".dependencies/preview/util/0.1.0/typst.toml", "[package]"),
	)
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.WriteFile("/invoice.zip", archive, 0644))

	result, err := inspect.Inspect(inspect.Options{FS: fsys, Archive: "/invoice.zip"})
	require.NoError(t, err)

	assert.Equal(t, "invoice", result.Name)
	assert.Equal(t, "2.0.0", result.Version)
	assert.Equal(t, int64(len(archive)), result.Size)
	assert.Equal(t, []string{
		"/typst.toml",
		"/main.typ",
		"/fonts/Body.TTF",
		"@preview/util:0.1.0/lib.typ",
		"@preview/util:0.1.0/typst.toml",
	}, result.Files)
	assert.Equal(t, []string{"@preview/util:0.1.0"}, result.Packages)
	assert.Equal(t, []string{"/fonts/Body.TTF"}, result.Fonts)
}

func TestInspectErrors(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.WriteFile("/junk.zip", []byte("not a zip"), 0644))

	_, err := inspect.Inspect(inspect.Options{FS: fsys, Archive: "/missing.zip"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveRead))

	_, err = inspect.Inspect(inspect.Options{FS: fsys, Archive: "/junk.zip"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveRead))
}
