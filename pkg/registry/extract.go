package registry

import (
	"archive/tar"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/klauspost/compress/gzip"
)

// extract expands a gzipped tarball below targetDir. Regular files and
// directories are written; links and special files are ignored. Members
// that would land outside targetDir abort the extraction.
func extract(fsys types.FS, r io.Reader, targetDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() { _ = gz.Close() }()

	if err := fsys.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar header: %w", err)
		}

		fullPath, err := safeJoin(targetDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(fullPath, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
		case tar.TypeReg:
			if err := fsys.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", fullPath, err)
			}
			data, err := io.ReadAll(tr)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", hdr.Name, err)
			}
			if err := fsys.WriteFile(fullPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", fullPath, err)
			}
		}
	}
}

// safeJoin joins member onto targetDir and rejects results outside it.
func safeJoin(targetDir, member string) (string, error) {
	if filepath.IsAbs(member) || strings.HasPrefix(member, "/") {
		return "", fmt.Errorf("absolute path in archive: %s", member)
	}
	root := filepath.Clean(targetDir)
	full := filepath.Join(root, filepath.FromSlash(member))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes target directory: %s", member)
	}
	return full, nil
}
