package filesystem

import (
	"path/filepath"

	"github.com/arthur-debert/tmplfs/pkg/types"
)

// CopyDir recursively copies the regular files and directories below src
// into dst, creating dst if needed. Anything that is neither a file nor a
// directory (symlinks, devices) is skipped.
func CopyDir(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := CopyDir(fsys, from, to); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := CopyFile(fsys, from, to); err != nil {
				return err
			}
		}
	}

	return nil
}

// CopyFile copies a single regular file, keeping its permission bits.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return fsys.WriteFile(dst, data, info.Mode().Perm())
}
