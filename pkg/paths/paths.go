package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Environment variable names
const (
	// EnvPackageCacheDir overrides the shared package cache directory
	EnvPackageCacheDir = "TMPLFS_PACKAGE_CACHE_DIR"

	// EnvPackageDir overrides the local packages root
	EnvPackageDir = "TMPLFS_PACKAGE_DIR"

	// EnvConfigDir overrides the configuration directory
	EnvConfigDir = "TMPLFS_CONFIG_DIR"
)

// Fixed layout names. These are part of the archive format and are not
// user-configurable.
const (
	// DependenciesDir is the reserved subtree holding materialized packages
	DependenciesDir = ".dependencies"

	// AppDirName is the directory name used below the XDG config home
	AppDirName = "tmplfs"

	// PackagesDirName is the directory name used below the XDG cache and data homes
	PackagesDirName = "typst/packages"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"
)

// PackageCacheDir returns the user-wide cache that downloaded packages are
// stored in before being copied into a template.
func PackageCacheDir() string {
	if dir := os.Getenv(EnvPackageCacheDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.CacheHome, filepath.FromSlash(PackagesDirName))
}

// LocalPackagesDir returns the root of locally installed packages, consulted
// for every namespace other than the public registry one.
func LocalPackagesDir() string {
	if dir := os.Getenv(EnvPackageDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.DataHome, filepath.FromSlash(PackagesDirName))
}

// ConfigDir returns the tmplfs configuration directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the path of the optional user configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DependencyRoot returns the reserved dependency subtree of a template.
func DependencyRoot(templateRoot string) string {
	return filepath.Join(templateRoot, DependenciesDir)
}

// DependencyDir returns where spec is materialized inside templateRoot.
func DependencyDir(templateRoot string, spec types.PackageSpec) string {
	return filepath.Join(DependencyRoot(templateRoot), PackageDir(spec))
}

// PackageDir returns the namespace/name/version triple as a relative path.
func PackageDir(spec types.PackageSpec) string {
	return filepath.FromSlash(spec.Dir())
}

// IsDependencyPath reports whether a relative path lies in a dependency
// subtree. Vendored copies nest, so any segment named DependenciesDir counts.
func IsDependencyPath(rel string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/") {
		if seg == DependenciesDir {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
