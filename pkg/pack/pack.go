package pack

import (
	"io"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/manifest"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
)

// entryMode is the unix mode written for every entry.
const entryMode fs.FileMode = 0755

// Options configures Package.
type Options struct {
	// Method names the compression method for file entries. Defaults to
	// DefaultMethod.
	Method string
}

// Result summarises a written archive.
type Result struct {
	// Entries holds entry names in write order; directories end in "/".
	Entries []string
	Files   int
	Dirs    int
	// Bytes is the uncompressed size of all file entries.
	Bytes int64
}

type packer struct {
	fsys     types.FS
	zw       *zip.Writer
	manifest *manifest.Manifest
	method   Method
	result   *Result
	logger   zerolog.Logger
}

// Package writes the packable content of srcDir to w as a zip archive.
// Paths are filtered with m.ShouldPathBePacked; directories get explicit
// entries, the root excepted.
func Package(fsys types.FS, srcDir string, w io.Writer, m *manifest.Manifest, opts Options) (*Result, error) {
	logger := logging.GetLogger("pack").With().Str("source", srcDir).Logger()
	done := logging.LogOperationStart(logger, "package template")
	defer done()

	info, err := fsys.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceNotDirectory, "the template path %s is not a directory", srcDir).
			WithDetail(errors.DetailPath, srcDir)
	}

	name := opts.Method
	if name == "" {
		name = DefaultMethod
	}
	method, err := LookupMethod(name)
	if err != nil {
		return nil, err
	}

	zw := zip.NewWriter(w)
	if method.Compressor != nil {
		zw.RegisterCompressor(method.ID, method.Compressor)
	}

	p := &packer{
		fsys:     fsys,
		zw:       zw,
		manifest: m,
		method:   method,
		result:   &Result{},
		logger:   logger,
	}
	if err := p.walk(srcDir, ""); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveWrite, "failed to finish archive")
	}

	logger.Info().
		Int("files", p.result.Files).
		Int("dirs", p.result.Dirs).
		Int64("bytes", p.result.Bytes).
		Str("method", method.Name).
		Msg("Template packaged")
	return p.result, nil
}

func (p *packer) walk(dir, rel string) error {
	entries, err := p.fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to read directory %s", dir).
			WithDetail(errors.DetailPath, dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		if !utf8.ValidString(childRel) {
			return errors.Newf(errors.ErrInvalidFilePath, "path %q is not valid UTF-8", childRel).
				WithDetail(errors.DetailPath, path)
		}
		if !p.manifest.ShouldPathBePacked(childRel) {
			p.logger.Trace().Str("path", childRel).Msg("Excluded from archive")
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to stat %s", path).
				WithDetail(errors.DetailPath, path)
		}

		switch {
		case entry.IsDir():
			if err := p.addDir(childRel, info); err != nil {
				return err
			}
			if err := p.walk(path, childRel); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := p.addFile(path, childRel, info); err != nil {
				return err
			}
		default:
			p.logger.Debug().Str("path", childRel).Msg("Skipping non-regular file")
		}
	}
	return nil
}

func (p *packer) header(name string, info fs.FileInfo, method uint16) (*zip.FileHeader, error) {
	date, clock, err := dosTimestamp(info.ModTime())
	if err != nil {
		if te, ok := err.(*errors.TmplfsError); ok {
			return nil, te.WithDetail(errors.DetailPath, name)
		}
		return nil, err
	}

	hdr := &zip.FileHeader{
		Name:         name,
		Method:       method,
		ModifiedDate: date,
		ModifiedTime: clock,
	}
	return hdr, nil
}

func (p *packer) addDir(rel string, info fs.FileInfo) error {
	hdr, err := p.header(rel+"/", info, zip.Store)
	if err != nil {
		return err
	}
	hdr.SetMode(fs.ModeDir | entryMode)

	if _, err := p.zw.CreateHeader(hdr); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to add directory %s", rel).
			WithDetail(errors.DetailPath, rel)
	}
	p.result.Entries = append(p.result.Entries, hdr.Name)
	p.result.Dirs++
	return nil
}

func (p *packer) addFile(path, rel string, info fs.FileInfo) error {
	data, err := p.fsys.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to read %s", path).
			WithDetail(errors.DetailPath, path)
	}

	hdr, err := p.header(rel, info, p.method.ID)
	if err != nil {
		return err
	}
	hdr.SetMode(entryMode)

	w, err := p.zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to add %s", rel).
			WithDetail(errors.DetailPath, rel)
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to write %s", rel).
			WithDetail(errors.DetailPath, rel)
	}

	p.result.Entries = append(p.result.Entries, rel)
	p.result.Files++
	p.result.Bytes += int64(len(data))
	return nil
}
