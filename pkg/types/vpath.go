package types

import (
	"path/filepath"
	"strings"
)

// VirtualPath is a rooted, slash separated path inside a template or package.
// It never contains "." segments; ".." segments only survive at the start,
// where they would climb above the root.
type VirtualPath struct {
	rooted string
}

// NewVirtualPath normalises p into a rooted virtual path. Both "/" and the
// host separator are accepted.
func NewVirtualPath(p string) VirtualPath {
	p = filepath.ToSlash(p)

	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else {
				out = append(out, seg)
			}
		default:
			out = append(out, seg)
		}
	}

	return VirtualPath{rooted: "/" + strings.Join(out, "/")}
}

// Rooted returns the path with a leading slash, e.g. "/lib/util.typ".
func (v VirtualPath) Rooted() string {
	if v.rooted == "" {
		return "/"
	}
	return v.rooted
}

// Rootless returns the path without the leading slash.
func (v VirtualPath) Rootless() string {
	return strings.TrimPrefix(v.Rooted(), "/")
}

func (v VirtualPath) String() string {
	return v.Rooted()
}

// Resolve joins the path onto root. It reports false if the path would
// leave root through ".." segments. Symlinks are not inspected.
func (v VirtualPath) Resolve(root string) (string, bool) {
	depth := 0
	parts := []string{root}
	for _, seg := range strings.Split(v.Rootless(), "/") {
		switch seg {
		case "", ".":
		case "..":
			if depth == 0 {
				return "", false
			}
			depth--
			parts = parts[:len(parts)-1]
		default:
			depth++
			parts = append(parts, seg)
		}
	}
	return filepath.Join(parts...), true
}
