package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/stretchr/testify/require"
)

// TestTemplate is a template directory under a temp root.
type TestTemplate struct {
	Root string // Temp directory owning the template and package dirs
	Dir  string // Full path to the template directory
}

// SetupTestTemplate creates an empty template directory named name.
func SetupTestTemplate(t *testing.T, name string) *TestTemplate {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	return &TestTemplate{Root: root, Dir: dir}
}

// AddFile writes a template-relative file, creating parent directories.
func (tt *TestTemplate) AddFile(t *testing.T, rel, content string) string {
	t.Helper()
	return WriteFile(t, tt.Dir, rel, content)
}

// AddManifest writes a typst.toml with the given package name and version
// and an empty tool section. extra is appended verbatim.
func (tt *TestTemplate) AddManifest(t *testing.T, name, version, extra string) string {
	t.Helper()
	return tt.AddFile(t, "typst.toml", Manifest(name, version, extra))
}

// PackagesDir returns a directory next to the template used as a local
// packages root or a shared cache in tests.
func (tt *TestTemplate) PackagesDir(kind string) string {
	return filepath.Join(tt.Root, kind)
}

// AddPackage writes a package below base in the <ns>/<name>/<version>
// layout. A typst.toml is generated unless files provides one.
func AddPackage(t *testing.T, base string, spec types.PackageSpec, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(base, filepath.FromSlash(spec.Dir()))
	require.NoError(t, os.MkdirAll(dir, 0755))
	if _, ok := files["typst.toml"]; !ok {
		WriteFile(t, dir, "typst.toml", Manifest(spec.Name, spec.Version.String(), ""))
	}
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// WriteFile writes dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Manifest renders a minimal typst.toml.
func Manifest(name, version, extra string) string {
	return fmt.Sprintf(`[package]
name = %q
version = %q
entrypoint = "main.typ"

[tool.tmplfs]
manifest_version = 1
%s`, name, version, extra)
}

// Spec builds a package spec, failing the test on a bad version.
func Spec(t *testing.T, namespace, name, version string) types.PackageSpec {
	t.Helper()

	v, err := types.ParseVersion(version)
	require.NoError(t, err)
	return types.PackageSpec{Namespace: namespace, Name: name, Version: v}
}
