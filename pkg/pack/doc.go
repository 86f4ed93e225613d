// Package pack writes a template directory into a zip archive that an
// archive store can serve without touching the filesystem.
//
// The archive holds every file the manifest marks as packable, including
// the materialized .dependencies tree, in directory walk order. Entry
// timestamps come from file modification times so repacking an unchanged
// template yields the same layout.
package pack
