// Package deps materializes every package a template imports, directly or
// through other packages, below the template's .dependencies directory.
//
// Resolution is a work-list walk: the template directory is scanned first,
// then every newly discovered package's directory. Each package is visited
// at most once per run, so cyclic imports terminate.
package deps
