package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// LoadDir reads, parses and validates the manifest of the template in dir.
// fileName defaults to FileName.
func LoadDir(fsys types.FS, dir, fileName string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")
	if fileName == "" {
		fileName = FileName
	}

	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Error().Str("path", dir).Msg("Template is not a directory")
		return nil, errors.Newf(errors.ErrSourceNotDirectory, "the template path %s is not a directory", dir).
			WithDetail(errors.DetailPath, dir)
	}

	path := filepath.Join(dir, fileName)
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest %s", path).
			WithDetail(errors.DetailPath, path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, withPath(err, path)
	}
	if err := m.Validate(fsys, dir); err != nil {
		return nil, withPath(err, path)
	}

	logger.Debug().
		Str("name", m.Package.Name).
		Str("version", m.Package.Version.String()).
		Str("tool", m.ToolSection).
		Msg("Manifest loaded")
	return m, nil
}

func withPath(err error, path string) error {
	if te, ok := err.(*errors.TmplfsError); ok {
		return te.WithDetail(errors.DetailPath, path)
	}
	return err
}
