// Package registry downloads packages from the public package registry into
// the shared, user-wide package cache.
//
// A package @<ns>/<name>:<version> is fetched from
// <url>/<ns>/<name>-<version>.tar.gz and extracted to
// <cache>/<ns>/<name>/<version>. Extraction goes to a temporary sibling
// directory that is renamed into place, so a half-written package is never
// visible in the cache.
package registry
