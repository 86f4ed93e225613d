package files

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Store resolves file ids to decoded text or raw bytes and lists the font
// files a template ships.
type Store interface {
	// Source returns the file decoded as UTF-8 text.
	Source(id types.FileID) (*Source, error)

	// File returns the raw bytes of the file.
	File(id types.FileID) ([]byte, error)

	// FontFiles returns every font file, in discovery order.
	FontFiles() []types.FileID
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// decodeUTF8 strips an optional byte order mark and validates the rest.
func decodeUTF8(id types.FileID, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", errors.Newf(errors.ErrInvalidEncoding, "file %s is not valid utf-8", id).
			WithDetail(errors.DetailPath, id.Path().Rooted())
	}
	return string(data), nil
}

var fontExtensions = map[string]bool{
	"ttf": true,
	"ttc": true,
	"otf": true,
	"otc": true,
}

// isFont reports whether name has a font extension, ignoring case.
func isFont(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return fontExtensions[strings.ToLower(name[i+1:])]
}

func notFound(id types.FileID) error {
	return errors.Newf(errors.ErrNotFound, "file not found: %s", id).
		WithDetail(errors.DetailPath, id.Path().Rooted())
}
