package types

// FileID names a logical file: an optional package plus a virtual path
// relative to the template root or the package root.
type FileID struct {
	pkg    PackageSpec
	scoped bool
	path   VirtualPath
}

// NewFileID creates a file id. A nil spec means the file belongs to the
// template itself.
func NewFileID(spec *PackageSpec, p VirtualPath) FileID {
	id := FileID{path: NewVirtualPath(p.Rooted())}
	if spec != nil {
		id.pkg = *spec
		id.scoped = true
	}
	return id
}

// TemplateFile is shorthand for a template-scoped id.
func TemplateFile(p string) FileID {
	return NewFileID(nil, NewVirtualPath(p))
}

// PackageFile is shorthand for a package-scoped id.
func PackageFile(spec PackageSpec, p string) FileID {
	return NewFileID(&spec, NewVirtualPath(p))
}

// Package returns the owning package, if any.
func (id FileID) Package() (PackageSpec, bool) {
	return id.pkg, id.scoped
}

// Path returns the virtual path within the template or package.
func (id FileID) Path() VirtualPath {
	return id.path
}

func (id FileID) String() string {
	if id.scoped {
		return id.pkg.String() + id.path.Rooted()
	}
	return id.path.Rooted()
}
