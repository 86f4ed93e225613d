package testutil

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// ZipEntry is one archive member. Names ending in "/" are directories.
type ZipEntry struct {
	Name    string
	Content []byte
	Method  uint16
}

// FileEntry is a deflated text entry.
func FileEntry(name, content string) ZipEntry {
	return ZipEntry{Name: name, Content: []byte(content), Method: zip.Deflate}
}

// BuildZip writes entries in order into an in-memory zip archive. The zstd
// method is registered so fixtures can mirror packed templates.
func BuildZip(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: e.Method})
		require.NoError(t, err)
		if len(e.Content) > 0 {
			_, err = w.Write(e.Content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}
