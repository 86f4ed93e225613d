// Package pack implements the pack command: for every target template it
// validates the manifest, rebuilds the dependency tree and writes a zip
// archive.
package pack

import (
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/tmplfs/pkg/commands/targets"
	"github.com/arthur-debert/tmplfs/pkg/config"
	"github.com/arthur-debert/tmplfs/pkg/deps"
	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/files"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/manifest"
	packager "github.com/arthur-debert/tmplfs/pkg/pack"
	"github.com/arthur-debert/tmplfs/pkg/registry"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Options configures Pack.
type Options struct {
	FS      types.FS
	Targets []targets.Target
	// Config defaults to config.Default().
	Config *config.Config
	// OutDir overrides pack.out_dir.
	OutDir string
	// Fetcher overrides the registry client built from Config.
	Fetcher files.Fetcher
}

// TemplateResult describes one written archive.
type TemplateResult struct {
	Dir      string   `json:"dir" yaml:"dir"`
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"version" yaml:"version"`
	Archive  string   `json:"archive" yaml:"archive"`
	Packages []string `json:"packages" yaml:"packages"`
	Files    int      `json:"files" yaml:"files"`
	Dirs     int      `json:"dirs" yaml:"dirs"`
	Bytes    int64    `json:"bytes" yaml:"bytes"`
	Size     int64    `json:"size" yaml:"size"`
}

// Result lists the archives in target order.
type Result struct {
	Templates   []TemplateResult `json:"templates" yaml:"templates"`
	Compression string           `json:"compression" yaml:"compression"`
}

// Pack packs every target. The first failing template aborts the run; the
// error carries the template directory.
func Pack(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.pack")
	log.Debug().Int("targets", len(opts.Targets)).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = cfg.Pack.OutDir
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = registry.New(registry.Options{
			URL:       cfg.Registry.URL,
			CacheDir:  cfg.Packages.CacheDir,
			UserAgent: cfg.Registry.UserAgent,
			Timeout:   cfg.Registry.Timeout,
			FS:        fsys,
		})
	}

	if err := fsys.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveWrite, "failed to create output directory %s", outDir).
			WithDetail(errors.DetailPath, outDir)
	}

	result := &Result{Compression: cfg.Pack.Compression}
	for _, target := range opts.Targets {
		tr, err := packTemplate(fsys, cfg, fetcher, target.Dir, outDir)
		if err != nil {
			if te, ok := err.(*errors.TmplfsError); ok {
				return nil, te.WithDetail("template", target.Dir)
			}
			return nil, err
		}
		result.Templates = append(result.Templates, *tr)
	}

	log.Info().Int("archives", len(result.Templates)).Msg("Command finished")
	return result, nil
}

func packTemplate(fsys types.FS, cfg *config.Config, fetcher files.Fetcher, dir, outDir string) (*TemplateResult, error) {
	log := logging.GetLogger("commands.pack").With().Str("template", dir).Logger()

	m, err := manifest.LoadDir(fsys, dir, cfg.Manifest.File)
	if err != nil {
		return nil, err
	}

	store := files.NewDiskStore(dir, files.DiskOptions{
		FS: fsys,
		Packages: files.PackageSources{
			Namespace: cfg.Packages.Namespace,
			CacheDir:  cfg.Packages.CacheDir,
			LocalDir:  cfg.Packages.LocalDir,
			Fetcher:   fetcher,
		},
	})
	resolved, err := deps.New(store).Update()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	packed, err := packager.Package(fsys, dir, &buf, m, packager.Options{Method: cfg.Pack.Compression})
	if err != nil {
		return nil, err
	}

	version := m.Package.Version.String()
	archive := filepath.Join(outDir, cfg.Pack.ArchiveName(m.Package.Name, version))
	if err := fsys.WriteFile(archive, buf.Bytes(), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveWrite, "failed to write %s", archive).
			WithDetail(errors.DetailPath, archive)
	}

	packages := make([]string, 0, len(resolved.Packages))
	for _, spec := range resolved.Packages {
		packages = append(packages, spec.String())
	}

	log.Info().Str("archive", archive).Int("packages", len(packages)).Msg("Template packed")
	return &TemplateResult{
		Dir:      dir,
		Name:     m.Package.Name,
		Version:  version,
		Archive:  archive,
		Packages: packages,
		Files:    packed.Files,
		Dirs:     packed.Dirs,
		Bytes:    packed.Bytes,
		Size:     int64(buf.Len()),
	}, nil
}
