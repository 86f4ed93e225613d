// Package testutil provides utilities for testing tmplfs components.
//
// Key components:
//   - TestTemplate: declarative template directory builder on a real temp dir
//   - NewMemoryFS / WriteTree: afero-backed in-memory filesystems
//   - CountingFS: a types.FS wrapper that records how often each path is read
//   - BuildZip: in-memory zip fixtures for archive-backed stores
//
// All test data is defined inline; nothing reads fixture files from disk.
package testutil
