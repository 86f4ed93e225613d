package files_test

import (
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/files"
	"github.com/arthur-debert/tmplfs/pkg/testutil"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveStoreRootFiles(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.FileEntry("template.typ", "= Hello"),
		testutil.FileEntry("typst.toml", testutil.Manifest("test", "0.1.0", "")),
	)

	store, err := files.OpenArchiveBytes(data)
	require.NoError(t, err)

	src, err := store.Source(types.TemplateFile("/template.typ"))
	require.NoError(t, err)
	assert.Equal(t, "= Hello", src.Text())

	manifest, err := store.Source(types.TemplateFile("/typst.toml"))
	require.NoError(t, err)
	assert.Contains(t, manifest.Text(), "[tool.tmplfs]")
	assert.Empty(t, store.Packages())
}

func TestArchiveStoreDependencyEntries(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: ".dependencies/"},
		testutil.ZipEntry{Name: ".dependencies/preview/pkg/1.0.0/"},
		testutil.ZipEntry{Name: ".dependencies/preview/pkg/1.0.0/lib.typ", Content: []byte("#let f = 1"), Method: zstd.ZipMethodWinZip},
		testutil.FileEntry("main.typ", `#import "@preview/pkg:1.0.0"`),
	)

	store, err := files.OpenArchiveBytes(data)
	require.NoError(t, err)

	spec := types.PackageSpec{Namespace: "preview", Name: "pkg", Version: types.MustParseVersion("1.0.0")}
	src, err := store.Source(types.PackageFile(spec, "/lib.typ"))
	require.NoError(t, err)
	assert.Equal(t, "#let f = 1", src.Text())

	got, ok := src.ID().Package()
	require.True(t, ok)
	assert.Equal(t, spec, got)

	_, err = store.Source(types.TemplateFile(".dependencies/preview/pkg/1.0.0/lib.typ"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "dependency files are package scoped only")

	assert.Equal(t, []types.PackageSpec{spec}, store.Packages())
	assert.Equal(t, []types.FileID{types.PackageFile(spec, "lib.typ"), types.TemplateFile("main.typ")}, store.Files())
}

func TestArchiveStoreSkipsMalformedDependencyPaths(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.FileEntry(".dependencies/preview/pkg", "no version"),
		testutil.FileEntry(".dependencies/preview/pkg/one.two/lib.typ", "bad version"),
		testutil.FileEntry("main.typ", "ok"),
	)

	store, err := files.OpenArchiveBytes(data)
	require.NoError(t, err)

	assert.Equal(t, []types.FileID{types.TemplateFile("main.typ")}, store.Files())
}

func TestArchiveStoreFonts(t *testing.T) {
	spec := types.PackageSpec{Namespace: "preview", Name: "fonty", Version: types.MustParseVersion("0.2.0")}
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "fonts/NotoSans.ttf", Content: []byte{0, 1, 0, 0}, Method: zip.Store},
		testutil.ZipEntry{Name: "fonts/Inria.OTF", Content: []byte{0x4f, 0x54, 0x54, 0x4f}, Method: zip.Store},
		testutil.FileEntry("fonts/LICENSE", "OFL"),
		testutil.ZipEntry{Name: ".dependencies/preview/fonty/0.2.0/f.otc", Content: []byte{1}, Method: zip.Store},
	)

	store, err := files.OpenArchiveBytes(data)
	require.NoError(t, err)

	assert.Equal(t, []types.FileID{
		types.TemplateFile("fonts/NotoSans.ttf"),
		types.TemplateFile("fonts/Inria.OTF"),
		types.PackageFile(spec, "f.otc"),
	}, store.FontFiles())
}

func TestArchiveStoreBinaryEntry(t *testing.T) {
	data := testutil.BuildZip(t,
		testutil.ZipEntry{Name: "logo.png", Content: []byte{0x89, 'P', 'N', 'G', 0xff}, Method: zip.Store},
	)

	store, err := files.OpenArchiveBytes(data)
	require.NoError(t, err)

	raw, err := store.File(types.TemplateFile("logo.png"))
	require.NoError(t, err)
	assert.Len(t, raw, 5)

	_, err = store.Source(types.TemplateFile("logo.png"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidEncoding))
}

func TestArchiveStoreNotAZip(t *testing.T) {
	_, err := files.OpenArchiveBytes([]byte("definitely not a zip"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveRead))
}

func TestPreloadedStore(t *testing.T) {
	store := files.NewPreloadedStore(map[string]string{
		"main.typ":   "= Doc",
		"/data.json": `{"a": 1}`,
	})

	src, err := store.Source(types.TemplateFile("/main.typ"))
	require.NoError(t, err)
	assert.Equal(t, "= Doc", src.Text())

	raw, err := store.File(types.TemplateFile("data.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(raw))

	_, err = store.File(types.TemplateFile("other.typ"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Empty(t, store.FontFiles())
}
