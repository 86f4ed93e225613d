package files

import (
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// PreloadedStore serves a fixed set of template files from memory. It has no
// fonts and no packages; it exists for tests and embedding.
type PreloadedStore struct {
	sources map[types.FileID]*Source
	files   map[types.FileID][]byte
}

// NewPreloadedStore builds a store from path to content pairs. Paths are
// template-relative; a leading slash is optional.
func NewPreloadedStore(contents map[string]string) *PreloadedStore {
	s := &PreloadedStore{
		sources: make(map[types.FileID]*Source, len(contents)),
		files:   make(map[types.FileID][]byte, len(contents)),
	}
	for path, text := range contents {
		id := types.TemplateFile(path)
		s.sources[id] = NewSource(id, text)
		s.files[id] = []byte(text)
	}
	return s
}

// Source implements Store.
func (s *PreloadedStore) Source(id types.FileID) (*Source, error) {
	if src, ok := s.sources[id]; ok {
		return src, nil
	}
	return nil, notFound(id)
}

// File implements Store.
func (s *PreloadedStore) File(id types.FileID) ([]byte, error) {
	if data, ok := s.files[id]; ok {
		return data, nil
	}
	return nil, notFound(id)
}

// FontFiles implements Store. Preloaded templates never carry fonts.
func (s *PreloadedStore) FontFiles() []types.FileID {
	return nil
}

var (
	_ Store = (*DiskStore)(nil)
	_ Store = (*ArchiveStore)(nil)
	_ Store = (*PreloadedStore)(nil)
)
