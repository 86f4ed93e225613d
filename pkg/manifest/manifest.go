package manifest

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the default manifest file name.
const FileName = "typst.toml"

// ToolName is the tool section read by tmplfs; LegacyToolName is accepted
// when ToolName is absent.
const (
	ToolName       = "tmplfs"
	LegacyToolName = "oicana"
)

// DefaultTestsDir is used when the tool section names no tests directory.
const DefaultTestsDir = "tests"

// Manifest is a parsed typst.toml.
type Manifest struct {
	Package  PackageInfo   `toml:"package" json:"package" yaml:"package"`
	Template *TemplateInfo `toml:"template,omitempty" json:"template,omitempty" yaml:"template,omitempty"`
	Tool     Config        `toml:"-" json:"tool" yaml:"tool"`

	// ToolSection is the key the tool config was read from.
	ToolSection string `toml:"-" json:"-" yaml:"-"`

	unknownKeys []string
}

// PackageInfo is the [package] section.
type PackageInfo struct {
	Name        string        `toml:"name" json:"name" yaml:"name"`
	Version     types.Version `toml:"version" json:"version" yaml:"version"`
	Entrypoint  string        `toml:"entrypoint" json:"entrypoint" yaml:"entrypoint"`
	Authors     []string      `toml:"authors,omitempty" json:"authors,omitempty" yaml:"authors,omitempty"`
	License     string        `toml:"license,omitempty" json:"license,omitempty" yaml:"license,omitempty"`
	Description string        `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Homepage    string        `toml:"homepage,omitempty" json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Repository  string        `toml:"repository,omitempty" json:"repository,omitempty" yaml:"repository,omitempty"`
	Keywords    []string      `toml:"keywords,omitempty" json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Categories  []string      `toml:"categories,omitempty" json:"categories,omitempty" yaml:"categories,omitempty"`
	Disciplines []string      `toml:"disciplines,omitempty" json:"disciplines,omitempty" yaml:"disciplines,omitempty"`
	Compiler    string        `toml:"compiler,omitempty" json:"compiler,omitempty" yaml:"compiler,omitempty"`
	Exclude     []string      `toml:"exclude,omitempty" json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// TemplateInfo is the optional [template] section.
type TemplateInfo struct {
	Path       string `toml:"path" json:"path" yaml:"path"`
	Entrypoint string `toml:"entrypoint" json:"entrypoint" yaml:"entrypoint"`
	Thumbnail  string `toml:"thumbnail,omitempty" json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// Config is the tmplfs tool section.
type Config struct {
	ManifestVersion uint8                    `toml:"manifest_version" json:"manifest_version" yaml:"manifest_version"`
	Inputs          []map[string]interface{} `toml:"inputs,omitempty" json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Tests           string                   `toml:"tests" json:"tests" yaml:"tests"`
}

var knownTopLevel = map[string]bool{"package": true, "template": true, "tool": true}

var knownPackageKeys = map[string]bool{
	"name": true, "version": true, "entrypoint": true, "authors": true,
	"license": true, "description": true, "homepage": true, "repository": true,
	"keywords": true, "categories": true, "disciplines": true, "compiler": true,
	"exclude": true,
}

// Parse decodes manifest TOML. Unknown keys are remembered for Validate.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "manifest is not valid toml")
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to decode manifest")
	}

	pkg, _ := raw["package"].(map[string]interface{})
	if pkg == nil {
		return nil, errors.New(errors.ErrManifestParse, "manifest has no [package] section")
	}
	for _, key := range []string{"name", "version", "entrypoint"} {
		if _, ok := pkg[key]; !ok {
			return nil, errors.Newf(errors.ErrManifestParse, "missing field `package.%s`", key)
		}
	}

	for key := range raw {
		if !knownTopLevel[key] {
			m.unknownKeys = append(m.unknownKeys, key)
		}
	}
	for key := range pkg {
		if !knownPackageKeys[key] {
			m.unknownKeys = append(m.unknownKeys, "package."+key)
		}
	}
	sort.Strings(m.unknownKeys)

	if err := m.decodeTool(raw); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Manifest) decodeTool(raw map[string]interface{}) error {
	tool, _ := raw["tool"].(map[string]interface{})
	section := ToolName
	table, ok := tool[ToolName].(map[string]interface{})
	if !ok {
		section = LegacyToolName
		table, ok = tool[LegacyToolName].(map[string]interface{})
	}
	if !ok {
		return errors.Newf(errors.ErrManifestParse, "missing section `tool.%s`", ToolName)
	}
	if _, ok := table["manifest_version"]; !ok {
		return errors.Newf(errors.ErrManifestParse, "missing field `tool.%s.manifest_version`", section)
	}

	// round trip the sub table to decode it with struct tags
	data, err := toml.Marshal(table)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestParse, "failed to read `tool.%s`", section)
	}
	cfg := Config{Tests: DefaultTestsDir}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrapf(err, errors.ErrManifestParse, "failed to decode `tool.%s`", section)
	}

	m.Tool = cfg
	m.ToolSection = section
	return nil
}

// UnknownKeys lists top-level and package keys tmplfs does not know.
func (m *Manifest) UnknownKeys() []string {
	return m.unknownKeys
}

// Validate checks the manifest against the template at root on fsys. With a
// nil fsys the tests directory is not looked up.
func (m *Manifest) Validate(fsys types.FS, root string) error {
	if len(m.unknownKeys) > 0 {
		return errors.Newf(errors.ErrManifestInvalid, "unknown keys found in the manifest: %s", strings.Join(m.unknownKeys, ", ")).
			WithDetail("keys", m.unknownKeys)
	}

	if !types.IsIdent(m.Package.Name) {
		return errors.Newf(errors.ErrManifestInvalid, "the template name %q is not a valid identifier", m.Package.Name)
	}

	tests := m.Tool.Tests
	if filepath.IsAbs(tests) || path.IsAbs(filepath.ToSlash(tests)) {
		return errors.Newf(errors.ErrManifestInvalid, "value of 'tests' (%s) needs to be a relative path from the template root to a directory", tests)
	}
	if fsys != nil {
		if info, err := fsys.Stat(filepath.Join(root, filepath.FromSlash(tests))); err == nil && !info.IsDir() {
			return errors.Newf(errors.ErrManifestInvalid, "value of 'tests' (%s) needs to be a relative path from the template root to a directory", tests).
				WithDetail(errors.DetailPath, tests)
		}
	}

	return nil
}

// ShouldPathBePacked reports whether a template-relative path belongs in a
// packed archive. Paths inside the tests directory do not; the comparison
// is on whole, slash-normalised segments, so "tests" excludes
// "./tests/a.typ" but not "./testsuite" or "./sub/tests".
func (m *Manifest) ShouldPathBePacked(rel string) bool {
	tests := formatRelativePath(m.Tool.Tests)
	p := formatRelativePath(rel)

	if strings.HasSuffix(tests, "/") {
		return !strings.HasPrefix(p+"/", tests)
	}
	return p != tests && !strings.HasPrefix(p, tests+"/")
}

// formatRelativePath normalises a relative path to start with "./" and use
// forward slashes. Absolute paths are only slash-normalised.
func formatRelativePath(p string) string {
	normalized := strings.ReplaceAll(p, "\\", "/")
	if path.IsAbs(normalized) || filepath.IsAbs(p) {
		return normalized
	}

	switch {
	case normalized == "." || normalized == "":
		return "./"
	case normalized == "..":
		return ".."
	case strings.HasPrefix(normalized, "./") || strings.HasPrefix(normalized, "../"):
		return strings.TrimSuffix(normalized, "/")
	default:
		return "./" + strings.TrimSuffix(normalized, "/")
	}
}
