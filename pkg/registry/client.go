package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/filesystem"
	"github.com/arthur-debert/tmplfs/pkg/internal/hashutil"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/paths"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultURL is the public registry.
const DefaultURL = "https://packages.typst.org"

// Options configures a Client.
type Options struct {
	URL        string
	CacheDir   string
	UserAgent  string
	Timeout    time.Duration
	FS         types.FS
	HTTPClient *http.Client
}

// Client fetches registry packages into the shared cache.
type Client struct {
	url       string
	cacheDir  string
	userAgent string
	fs        types.FS
	http      *http.Client
	group     singleflight.Group
	logger    zerolog.Logger
}

// New creates a Client. Zero options fall back to the public registry, the
// XDG package cache and the OS filesystem.
func New(opts Options) *Client {
	c := &Client{
		url:       opts.URL,
		cacheDir:  opts.CacheDir,
		userAgent: opts.UserAgent,
		fs:        opts.FS,
		http:      opts.HTTPClient,
		logger:    logging.GetLogger("registry"),
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	if c.cacheDir == "" {
		c.cacheDir = paths.PackageCacheDir()
	}
	if c.userAgent == "" {
		c.userAgent = "tmplfs"
	}
	if c.fs == nil {
		c.fs = filesystem.NewOS()
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: opts.Timeout}
	}
	return c
}

// CacheDir returns the shared cache the client writes to.
func (c *Client) CacheDir() string {
	return c.cacheDir
}

// PackageURL returns the download location of spec.
func (c *Client) PackageURL(spec types.PackageSpec) string {
	return fmt.Sprintf("%s/%s/%s-%s.tar.gz", c.url, spec.Namespace, spec.Name, spec.Version)
}

// Prepare returns the cached directory of spec, downloading it first if it
// is not cached yet. Concurrent calls for the same package share one
// download.
func (c *Client) Prepare(ctx context.Context, spec types.PackageSpec) (string, error) {
	dir := filepath.Join(c.cacheDir, paths.PackageDir(spec))
	if info, err := c.fs.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	_, err, _ := c.group.Do(spec.String(), func() (interface{}, error) {
		if info, err := c.fs.Stat(dir); err == nil && info.IsDir() {
			return nil, nil
		}
		return nil, c.download(ctx, spec, dir)
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

func (c *Client) download(ctx context.Context, spec types.PackageSpec, dir string) error {
	url := c.PackageURL(spec)
	logger := c.logger.With().Str("package", spec.String()).Logger()
	done := logging.LogOperationStart(logger, "download package")
	defer done()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fetchError(err, spec, "failed to build request for %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)

	logger.Info().Str("url", url).Msg("Downloading package")
	resp, err := c.http.Do(req)
	if err != nil {
		return fetchError(err, spec, "failed to download %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Newf(errors.ErrPackageNotFound, "package not found: %s", spec).
			WithDetail(errors.DetailPackage, spec.String())
	case resp.StatusCode != http.StatusOK:
		return errors.Newf(errors.ErrPackageFetch, "failed to download %s: %s", url, resp.Status).
			WithDetail(errors.DetailPackage, spec.String())
	}

	if err := c.fs.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return fetchError(err, spec, "failed to create cache directory")
	}
	tmp := dir + ".tmp-" + strconv.Itoa(os.Getpid()) + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchError(err, spec, "failed to download %s", url)
	}
	sum, err := hashutil.Checksum(bytes.NewReader(data))
	if err != nil {
		return fetchError(err, spec, "failed to checksum %s", url)
	}

	if err := extract(c.fs, bytes.NewReader(data), tmp); err != nil {
		_ = c.fs.RemoveAll(tmp)
		return fetchError(err, spec, "failed to extract %s", url)
	}

	if err := c.fs.Rename(tmp, dir); err != nil {
		_ = c.fs.RemoveAll(tmp)
		// another process may have won the race
		if info, statErr := c.fs.Stat(dir); statErr == nil && info.IsDir() {
			return nil
		}
		return fetchError(err, spec, "failed to move package into cache")
	}

	logger.Info().
		Int("bytes", len(data)).
		Str("sha256", sum).
		Str("dir", dir).
		Msg("Package downloaded")
	return nil
}

func fetchError(err error, spec types.PackageSpec, format string, args ...interface{}) error {
	return errors.Wrapf(err, errors.ErrPackageFetch, format, args...).
		WithDetail(errors.DetailPackage, spec.String())
}
