// Package filesystem provides filesystem implementations for tmplfs.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem
// used for in-memory tests.
package filesystem
