package types

import (
	"path"
	"strings"
	"unicode"

	"github.com/arthur-debert/tmplfs/pkg/errors"
)

// PackageSpec identifies a versioned external package, written in source
// files as "@namespace/name:version".
type PackageSpec struct {
	Namespace string
	Name      string
	Version   Version
}

// ParsePackageSpec parses "@namespace/name:major.minor.patch".
func ParsePackageSpec(s string) (PackageSpec, error) {
	rest, ok := strings.CutPrefix(s, "@")
	if !ok {
		return PackageSpec{}, specError(s, "package specification must start with '@'")
	}

	namespace, rest, ok := strings.Cut(rest, "/")
	if !ok || namespace == "" {
		return PackageSpec{}, specError(s, "package specification is missing namespace")
	}
	if !IsIdent(namespace) {
		return PackageSpec{}, specError(s, "`"+namespace+"` is not a valid package namespace")
	}

	name, versionText, ok := strings.Cut(rest, ":")
	if name == "" {
		return PackageSpec{}, specError(s, "package specification is missing name")
	}
	if !IsIdent(name) {
		return PackageSpec{}, specError(s, "`"+name+"` is not a valid package name")
	}
	if !ok || versionText == "" {
		return PackageSpec{}, specError(s, "package specification is missing version")
	}

	version, err := ParseVersion(versionText)
	if err != nil {
		return PackageSpec{}, errors.Wrapf(err, errors.ErrPackageSpecInvalid, "invalid package specification %q", s)
	}

	return PackageSpec{Namespace: namespace, Name: name, Version: version}, nil
}

func specError(spec, msg string) error {
	return errors.New(errors.ErrPackageSpecInvalid, msg).WithDetail(errors.DetailPackage, spec)
}

// String renders the spec the way it is written in an import.
func (p PackageSpec) String() string {
	return "@" + p.Namespace + "/" + p.Name + ":" + p.Version.String()
}

// Dir returns the slash separated "namespace/name/version" triple used for
// dependency directories and archive entries.
func (p PackageSpec) Dir() string {
	return path.Join(p.Namespace, p.Name, p.Version.String())
}

// IsIdent reports whether s is a valid identifier: a letter or underscore,
// followed by letters, digits, underscores or hyphens.
func IsIdent(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentContinue(r) {
			return false
		}
	}
	return s != ""
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_ID_Start)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || r == '-' ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}
