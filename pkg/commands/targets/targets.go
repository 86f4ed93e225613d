// Package targets turns a command line path into the template directories a
// command should act on.
package targets

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/manifest"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Options configures Resolve.
type Options struct {
	FS types.FS
	// Path is a template directory, or the root searched when All is set.
	Path string
	// All searches Path recursively for templates.
	All bool
	// ManifestFile defaults to manifest.FileName.
	ManifestFile string
}

// Target is one template directory.
type Target struct {
	Dir  string `json:"dir" yaml:"dir"`
	Name string `json:"name" yaml:"name"`
}

// Resolve returns the targets selected by opts. Without All, Path itself is
// the only target. With All, every directory below Path holding a manifest
// with a tool section is a target, in walk order; hidden directories are
// not searched and templates are not searched for nested templates.
func Resolve(opts Options) ([]Target, error) {
	logger := logging.GetLogger("commands.targets")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	manifestFile := opts.ManifestFile
	if manifestFile == "" {
		manifestFile = manifest.FileName
	}
	root := filepath.Clean(opts.Path)

	info, err := fsys.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceNotDirectory, "the path %s is not a directory", root).
			WithDetail(errors.DetailPath, root)
	}

	if !opts.All {
		return []Target{newTarget(root)}, nil
	}

	var found []Target
	var walk func(dir string) error
	walk = func(dir string) error {
		if isTemplate(fsys, dir, manifestFile) {
			found = append(found, newTarget(dir))
			return nil
		}

		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrNotFound, "failed to read directory %s", dir).
				WithDetail(errors.DetailPath, dir)
		}
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if err := walk(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no templates found below %s", root).
			WithDetail(errors.DetailPath, root)
	}
	logger.Debug().Str("root", root).Int("templates", len(found)).Msg("Templates found")
	return found, nil
}

// isTemplate reports whether dir has a manifest that parses. Plain packages
// without a tool section are not templates.
func isTemplate(fsys types.FS, dir, manifestFile string) bool {
	data, err := fsys.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return false
	}
	if _, err := manifest.Parse(data); err != nil {
		logger := logging.GetLogger("commands.targets")
		logger.Debug().
			Err(err).
			Str("dir", dir).
			Msg("Ignoring directory with an unusable manifest")
		return false
	}
	return true
}

func newTarget(dir string) Target {
	return Target{Dir: dir, Name: filepath.Base(dir)}
}
