// Package manifest reads and validates the typst.toml manifest of a
// template.
//
// Besides the standard [package] and [template] sections, a template carries
// a tool section, [tool.tmplfs] (the older [tool.oicana] name is accepted),
// holding the manifest version, opaque input definitions and the tests
// directory that is left out of packed archives.
package manifest
