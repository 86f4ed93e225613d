package files

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/paths"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ArchiveStore is a packed template held in memory.
//
// Every entry is read and indexed when the store is opened. Entries below
// .dependencies/<namespace>/<name>/<version>/ become package-scoped ids.
type ArchiveStore struct {
	mu      sync.RWMutex
	sources map[types.FileID]*Source
	files   map[types.FileID][]byte
	fonts   []types.FileID
	order   []types.FileID
}

// OpenArchiveBytes opens a zip archive held in data.
func OpenArchiveBytes(data []byte) (*ArchiveStore, error) {
	return OpenArchive(bytes.NewReader(data), int64(len(data)))
}

// OpenArchive reads and indexes a zip archive. Entries that cannot be read
// or whose dependency path is malformed are skipped with a warning.
func OpenArchive(r io.ReaderAt, size int64) (*ArchiveStore, error) {
	logger := logging.GetLogger("files.archive")

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveRead, "failed to read template archive")
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	s := &ArchiveStore{
		sources: make(map[types.FileID]*Source),
		files:   make(map[types.FileID][]byte),
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}

		id, err := archiveFileID(f.Name)
		if err != nil {
			logger.Warn().Err(err).Str("entry", f.Name).Msg("Skipping archive entry")
			continue
		}

		data, err := readEntry(f)
		if err != nil {
			logger.Warn().Err(err).Str("entry", f.Name).Msg("Failed to read archive entry")
			continue
		}

		if isFont(f.Name) {
			s.fonts = append(s.fonts, id)
		}
		if _, dup := s.files[id]; !dup {
			s.order = append(s.order, id)
		}
		if utf8.Valid(data) {
			s.sources[id] = NewSource(id, string(bytes.TrimPrefix(data, utf8BOM)))
		}
		s.files[id] = data
	}

	logger.Debug().
		Int("files", len(s.files)).
		Int("sources", len(s.sources)).
		Int("fonts", len(s.fonts)).
		Msg("Indexed template archive")

	return s, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// archiveFileID maps an entry name to a file id.
func archiveFileID(name string) (types.FileID, error) {
	dir, rest, ok := strings.Cut(name, "/")
	if !ok || dir != paths.DependenciesDir {
		return types.TemplateFile(name), nil
	}

	namespace, rest, ok := strings.Cut(rest, "/")
	if !ok {
		return types.FileID{}, errors.Newf(errors.ErrInvalidFilePath, "no namespace in dependency path %s", name)
	}
	pkg, rest, ok := strings.Cut(rest, "/")
	if !ok {
		return types.FileID{}, errors.Newf(errors.ErrInvalidFilePath, "no package in dependency path %s", name)
	}
	ver, rest, ok := strings.Cut(rest, "/")
	if !ok {
		return types.FileID{}, errors.Newf(errors.ErrInvalidFilePath, "no version in dependency path %s", name)
	}
	version, err := types.ParseVersion(ver)
	if err != nil {
		return types.FileID{}, errors.Wrapf(err, errors.ErrInvalidFilePath, "bad version in dependency path %s", name)
	}

	spec := types.PackageSpec{Namespace: namespace, Name: pkg, Version: version}
	return types.PackageFile(spec, rest), nil
}

// Source implements Store. Entries that are not valid UTF-8 fail with
// INVALID_ENCODING.
func (s *ArchiveStore) Source(id types.FileID) (*Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if src, ok := s.sources[id]; ok {
		return src, nil
	}
	if _, ok := s.files[id]; ok {
		return nil, errors.Newf(errors.ErrInvalidEncoding, "file %s is not valid utf-8", id).
			WithDetail(errors.DetailPath, id.Path().Rooted())
	}
	return nil, notFound(id)
}

// File implements Store.
func (s *ArchiveStore) File(id types.FileID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data, ok := s.files[id]; ok {
		return data, nil
	}
	return nil, notFound(id)
}

// FontFiles implements Store.
func (s *ArchiveStore) FontFiles() []types.FileID {
	return s.fonts
}

// Files lists every indexed id in archive order.
func (s *ArchiveStore) Files() []types.FileID {
	return slices.Clone(s.order)
}

// Packages returns the distinct packages bundled in the archive, in the
// order their first file appears.
func (s *ArchiveStore) Packages() []types.PackageSpec {
	seen := make(map[types.PackageSpec]bool)
	var specs []types.PackageSpec
	for _, id := range s.order {
		if spec, ok := id.Package(); ok && !seen[spec] {
			seen[spec] = true
			specs = append(specs, spec)
		}
	}
	return specs
}
