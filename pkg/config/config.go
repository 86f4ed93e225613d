package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/tmplfs/pkg/paths"
)

// Config is the fully merged tmplfs configuration.
type Config struct {
	Packages Packages `koanf:"packages"`
	Registry Registry `koanf:"registry"`
	Pack     Pack     `koanf:"pack"`
	Manifest Manifest `koanf:"manifest"`
}

// Packages locates package sources.
type Packages struct {
	CacheDir  string `koanf:"cache_dir"`
	LocalDir  string `koanf:"local_dir"`
	Namespace string `koanf:"namespace"`
}

// Registry configures downloads from the public package registry.
type Registry struct {
	URL       string        `koanf:"url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
}

// Pack configures archive output.
type Pack struct {
	Compression string `koanf:"compression"`
	Name        string `koanf:"name"`
	OutDir      string `koanf:"out_dir"`
}

// Manifest names the per-template manifest file.
type Manifest struct {
	File string `koanf:"file"`
}

// ArchiveName expands the {template} and {version} placeholders of the
// configured archive name.
func (p Pack) ArchiveName(template, version string) string {
	return strings.NewReplacer("{template}", template, "{version}", version).Replace(p.Name)
}

// Default returns the configuration built from the embedded defaults only.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserFile: true, SkipEnv: true})
	if err != nil {
		// embedded defaults are part of the binary
		panic(err)
	}
	return cfg
}

func postProcess(cfg *Config) {
	if cfg.Packages.CacheDir == "" {
		cfg.Packages.CacheDir = paths.PackageCacheDir()
	}
	if cfg.Packages.LocalDir == "" {
		cfg.Packages.LocalDir = paths.LocalPackagesDir()
	}
	cfg.Pack.Compression = strings.ToLower(strings.TrimSpace(cfg.Pack.Compression))
	cfg.Registry.URL = strings.TrimRight(cfg.Registry.URL, "/")
}
