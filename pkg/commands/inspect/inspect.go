// Package inspect lists what a packed template archive contains.
package inspect

import (
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/files"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/manifest"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Options configures Inspect.
type Options struct {
	FS      types.FS
	Archive string
	// ManifestFile defaults to manifest.FileName.
	ManifestFile string
}

// Result describes an archive.
type Result struct {
	Archive string `json:"archive" yaml:"archive"`
	Size    int64  `json:"size" yaml:"size"`
	// Name and Version come from the template manifest, when it parses.
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Version  string   `json:"version,omitempty" yaml:"version,omitempty"`
	Files    []string `json:"files" yaml:"files"`
	Packages []string `json:"packages" yaml:"packages"`
	Fonts    []string `json:"fonts" yaml:"fonts"`
}

// Inspect opens the archive the way a compiler would and lists its files,
// packages and fonts.
func Inspect(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.inspect")
	log.Debug().Str("archive", opts.Archive).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	manifestFile := opts.ManifestFile
	if manifestFile == "" {
		manifestFile = manifest.FileName
	}

	data, err := fsys.ReadFile(opts.Archive)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveRead, "failed to read %s", opts.Archive).
			WithDetail(errors.DetailPath, opts.Archive)
	}
	store, err := files.OpenArchiveBytes(data)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Archive:  opts.Archive,
		Size:     int64(len(data)),
		Files:    idStrings(store.Files()),
		Fonts:    idStrings(store.FontFiles()),
		Packages: []string{},
	}
	for _, spec := range store.Packages() {
		result.Packages = append(result.Packages, spec.String())
	}

	if raw, err := store.File(types.TemplateFile(manifestFile)); err == nil {
		if m, err := manifest.Parse(raw); err == nil {
			result.Name = m.Package.Name
			result.Version = m.Package.Version.String()
		} else {
			log.Warn().Err(err).Msg("Archive manifest does not parse")
		}
	}

	log.Info().
		Int("files", len(result.Files)).
		Int("packages", len(result.Packages)).
		Int("fonts", len(result.Fonts)).
		Msg("Command finished")
	return result, nil
}

func idStrings(ids []types.FileID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
