package files

import (
	"os"
	"sync"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/rs/zerolog"
)

// DiskOptions configures a DiskStore.
type DiskOptions struct {
	// FS is the filesystem the template lives on. Defaults to the OS.
	FS types.FS

	// Packages locates packages imported by the template. The zero value
	// finds nothing, so every package import fails with PACKAGE_NOT_FOUND
	// unless it is already materialized.
	Packages PackageSources
}

// DiskStore is a template directory on a filesystem.
//
// Files are read lazily and cached per id. Call Reset between compilations
// so changed files are picked up; unchanged files keep their decoded value
// (and *Source identity) across resets.
type DiskStore struct {
	fs       types.FS
	root     string
	packages PackageSources
	fonts    []types.FileID
	logger   zerolog.Logger

	mu    sync.Mutex
	slots map[types.FileID]*fileSlot
}

// fileSlot holds both views of one file; either may be populated.
type fileSlot struct {
	source slotCell[*Source]
	file   slotCell[[]byte]
}

// NewDiskStore opens the template at root. Fonts are discovered once, here.
func NewDiskStore(root string, opts DiskOptions) *DiskStore {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	s := &DiskStore{
		fs:       fsys,
		root:     root,
		packages: opts.Packages,
		logger:   logging.GetLogger("files.disk").With().Str("root", root).Logger(),
		slots:    make(map[types.FileID]*fileSlot),
	}
	s.fonts = findFonts(fsys, root)
	s.logger.Debug().
		Int("fonts", len(s.fonts)).
		Str("cache", opts.Packages.CacheDir).
		Str("local", opts.Packages.LocalDir).
		Msg("Opened template directory")
	return s
}

// Root returns the template directory.
func (s *DiskStore) Root() string {
	return s.root
}

// FS returns the filesystem the store reads from.
func (s *DiskStore) FS() types.FS {
	return s.fs
}

// Source implements Store.
func (s *DiskStore) Source(id types.FileID) (*Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slot(id).source.getOrInit(
		func() ([]byte, error) { return s.read(id) },
		func(data []byte, prev *Source, hasPrev bool) (*Source, error) {
			text, err := decodeUTF8(id, data)
			if err != nil {
				return nil, err
			}
			if hasPrev {
				return prev.Replace(text), nil
			}
			return NewSource(id, text), nil
		},
	)
}

// File implements Store.
func (s *DiskStore) File(id types.FileID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slot(id).file.getOrInit(
		func() ([]byte, error) { return s.read(id) },
		func(data []byte, _ []byte, _ bool) ([]byte, error) { return data, nil },
	)
}

// FontFiles implements Store.
func (s *DiskStore) FontFiles() []types.FileID {
	return s.fonts
}

// Reset starts a new access epoch. The next access to every file checks
// storage again.
func (s *DiskStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range s.slots {
		slot.source.reset()
		slot.file.reset()
	}
}

func (s *DiskStore) slot(id types.FileID) *fileSlot {
	slot, ok := s.slots[id]
	if !ok {
		slot = &fileSlot{}
		s.slots[id] = slot
	}
	return slot
}

// read loads the raw bytes behind id. Must be called with mu held.
func (s *DiskStore) read(id types.FileID) ([]byte, error) {
	path, err := s.systemPath(id)
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Wrapf(err, errors.ErrAccessDenied, "cannot access %s", id).
				WithDetail(errors.DetailPath, path)
		}
		return nil, errors.Wrapf(err, errors.ErrNotFound, "file not found: %s", id).
			WithDetail(errors.DetailPath, path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrIsDirectory, "%s is a directory", id).
			WithDetail(errors.DetailPath, path)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		code := errors.ErrNotFound
		if os.IsPermission(err) {
			code = errors.ErrAccessDenied
		}
		return nil, errors.Wrapf(err, code, "failed to read %s", id).
			WithDetail(errors.DetailPath, path)
	}
	return data, nil
}

// systemPath maps id to a host path, materializing its package first.
func (s *DiskStore) systemPath(id types.FileID) (string, error) {
	root := s.root
	if spec, ok := id.Package(); ok {
		dir, err := s.preparePackage(spec)
		if err != nil {
			return "", err
		}
		root = dir
	}

	path, ok := id.Path().Resolve(root)
	if !ok {
		return "", errors.Newf(errors.ErrAccessDenied, "%s escapes its root", id).
			WithDetail(errors.DetailPath, id.Path().Rooted())
	}
	return path, nil
}
