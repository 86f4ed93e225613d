// Package files gives templates a uniform view of their source files and
// binary assets, independent of where the template lives.
//
// Three Store implementations exist:
//
//   - DiskStore reads a template directory lazily, caching every file by
//     content fingerprint and materializing imported packages into the
//     template's .dependencies subtree on first access.
//   - ArchiveStore serves a packed template from an in-memory zip archive.
//   - PreloadedStore serves a fixed path to content map, for tests.
//
// Callers address files with types.FileID and never see host paths.
package files
