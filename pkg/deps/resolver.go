package deps

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/files"
	"github.com/arthur-debert/tmplfs/pkg/imports"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/manifest"
	"github.com/arthur-debert/tmplfs/pkg/paths"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/rs/zerolog"
)

// SourceExt is the extension of files scanned for imports.
const SourceExt = ".typ"

// Resolver updates the dependency tree of one disk-backed template.
type Resolver struct {
	store  *files.DiskStore
	fs     types.FS
	logger zerolog.Logger
}

// Result describes one resolution run.
type Result struct {
	// Packages lists every materialized package in discovery order.
	Packages []types.PackageSpec
	// Scanned is the number of source files searched for imports.
	Scanned int
}

// New returns a resolver reading through store.
func New(store *files.DiskStore) *Resolver {
	return &Resolver{
		store:  store,
		fs:     store.FS(),
		logger: logging.GetLogger("deps").With().Str("root", store.Root()).Logger(),
	}
}

// unit is a directory whose sources still need scanning. pkg is nil for the
// template itself.
type unit struct {
	pkg *types.PackageSpec
	dir string
}

// Update discards the existing dependency tree and materializes every
// transitively imported package again. A package that cannot be
// materialized aborts the run.
func (r *Resolver) Update() (*Result, error) {
	done := logging.LogOperationStart(r.logger, "dependency update")
	defer done()

	root := r.store.Root()
	if err := r.fs.RemoveAll(paths.DependencyRoot(root)); err != nil {
		return nil, errors.Wrap(err, errors.ErrDependencyResolve, "failed to remove the previous dependency tree").
			WithDetail(errors.DetailPath, paths.DependencyRoot(root))
	}
	// cached package reads predate the removal
	r.store.Reset()

	result := &Result{}
	visited := make(map[types.PackageSpec]bool)
	queue := []unit{{dir: root}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		sources, err := r.sources(current)
		if err != nil {
			return nil, err
		}

		for _, id := range sources {
			specs, err := r.imports(id)
			if err != nil {
				return nil, err
			}
			result.Scanned++

			for _, spec := range specs {
				if visited[spec] {
					continue
				}
				visited[spec] = true

				if err := r.materialize(id, spec); err != nil {
					return nil, err
				}
				result.Packages = append(result.Packages, spec)

				spec := spec
				queue = append(queue, unit{pkg: &spec, dir: paths.DependencyDir(root, spec)})
			}
		}
	}

	r.logger.Info().
		Int("packages", len(result.Packages)).
		Int("sources", result.Scanned).
		Msg("Dependencies updated")
	return result, nil
}

// sources lists the source files of u in directory order. Dependency
// subtrees are skipped at any depth; vendored copies are not imports.
func (r *Resolver) sources(u unit) ([]types.FileID, error) {
	var ids []types.FileID

	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		entries, err := r.fs.ReadDir(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDependencyResolve, "failed to read directory %s", dir).
				WithDetail(errors.DetailPath, dir)
		}
		for _, entry := range entries {
			name := entry.Name()
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}
			switch {
			case entry.IsDir():
				if paths.IsDependencyPath(childRel) {
					continue
				}
				if err := walk(filepath.Join(dir, name), childRel); err != nil {
					return err
				}
			case strings.EqualFold(filepath.Ext(name), SourceExt):
				ids = append(ids, types.NewFileID(u.pkg, types.NewVirtualPath(childRel)))
			}
		}
		return nil
	}

	if err := walk(u.dir, ""); err != nil {
		return nil, err
	}
	return ids, nil
}

// imports returns the package specs imported by id. Files that are not
// valid UTF-8 cannot import anything and are skipped.
func (r *Resolver) imports(id types.FileID) ([]types.PackageSpec, error) {
	source, err := r.store.Source(id)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrInvalidEncoding) {
			r.logger.Warn().Str("file", id.String()).Msg("Skipping source that is not valid UTF-8")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrDependencyResolve, "failed to read %s", id).
			WithDetail(errors.DetailImporter, id.String())
	}

	specs, invalid := imports.PackageSpecs(source.Text())
	for _, err := range invalid {
		r.logger.Warn().
			Err(err).
			Str("file", id.String()).
			Interface("line", errors.GetErrorDetails(err)[errors.DetailLine]).
			Msg("Ignoring invalid package import")
	}
	return specs, nil
}

// materialize reads the package manifest through the store, which copies
// or fetches the package as a side effect.
func (r *Resolver) materialize(importer types.FileID, spec types.PackageSpec) error {
	r.logger.Debug().
		Str("package", spec.String()).
		Str("importer", importer.String()).
		Msg("Resolving package")

	if _, err := r.store.File(types.PackageFile(spec, manifest.FileName)); err != nil {
		return errors.Wrapf(err, errors.ErrDependencyResolve, "failed to resolve %s imported by %s", spec, importer).
			WithDetail(errors.DetailPackage, spec.String()).
			WithDetail(errors.DetailImporter, importer.String())
	}
	return nil
}
