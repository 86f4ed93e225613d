package files

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/paths"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// DefaultNamespace is the namespace served by the public package registry.
const DefaultNamespace = "preview"

// Fetcher makes a registry package available in the shared package cache
// and returns its directory there.
type Fetcher interface {
	Prepare(ctx context.Context, spec types.PackageSpec) (string, error)
}

// PackageSources tells a DiskStore where imported packages come from.
type PackageSources struct {
	// Namespace is served by Fetcher. Defaults to DefaultNamespace.
	Namespace string

	// CacheDir is the shared package cache Fetcher writes to. Only logged.
	CacheDir string

	// LocalDir holds packages of every other namespace, laid out as
	// <namespace>/<name>/<version>.
	LocalDir string

	Fetcher Fetcher
}

func (p PackageSources) namespace() string {
	if p.Namespace == "" {
		return DefaultNamespace
	}
	return p.Namespace
}

// preparePackage makes spec available below .dependencies. An existing
// directory is trusted as is. Must be called with mu held.
func (s *DiskStore) preparePackage(spec types.PackageSpec) (string, error) {
	dir := paths.DependencyDir(s.root, spec)
	if _, err := s.fs.Stat(dir); err == nil {
		return dir, nil
	}

	if spec.Namespace == s.packages.namespace() {
		if s.packages.Fetcher == nil {
			return "", packageNotFound(spec)
		}
		cached, err := s.packages.Fetcher.Prepare(context.Background(), spec)
		if err != nil {
			if errors.HasErrorCode(err, errors.ErrPackageNotFound) {
				return "", err
			}
			return "", errors.Wrapf(err, errors.ErrPackageFetch, "failed to fetch %s", spec).
				WithDetail(errors.DetailPackage, spec.String())
		}
		if err := s.copyPackage(spec, cached, dir); err != nil {
			return "", err
		}
		return dir, nil
	}

	if s.packages.LocalDir != "" {
		local := filepath.Join(s.packages.LocalDir, paths.PackageDir(spec))
		if info, err := s.fs.Stat(local); err == nil && info.IsDir() {
			if err := s.copyPackage(spec, local, dir); err != nil {
				return "", err
			}
			return dir, nil
		}
	}

	return "", packageNotFound(spec)
}

func (s *DiskStore) copyPackage(spec types.PackageSpec, from, to string) error {
	done := logging.LogOperationStart(s.logger, "copy package")
	defer done()
	s.logger.Debug().Str("package", spec.String()).Str("from", from).Msg("Copying package")

	if err := filesystem.CopyDir(s.fs, from, to); err != nil {
		// a partial copy would be trusted by the next lookup
		_ = s.fs.RemoveAll(to)
		return errors.Wrapf(err, errors.ErrPackageFetch, "failed to copy %s", spec).
			WithDetail(errors.DetailPackage, spec.String()).
			WithDetail(errors.DetailPath, from)
	}
	return nil
}

func packageNotFound(spec types.PackageSpec) error {
	return errors.Newf(errors.ErrPackageNotFound, "package not found: %s", spec).
		WithDetail(errors.DetailPackage, spec.String())
}
