// Package types defines the value types shared by every template store:
// FileID (an optional package plus a rooted virtual path), PackageSpec
// (namespace, name and version of an external package), Version and
// VirtualPath, as well as the FS interface the on-disk components run on.
//
// All of these are plain comparable values and can be used as map keys.
package types
