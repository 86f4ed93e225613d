package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/logging"
	"github.com/arthur-debert/tmplfs/pkg/pack"
	"github.com/arthur-debert/tmplfs/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables mapped onto config keys.
// TMPLFS_PACK_OUT_DIR sets pack.out_dir.
const EnvPrefix = "TMPLFS_"

// LoadOptions controls which layers Load applies.
type LoadOptions struct {
	// ConfigFile replaces the XDG user config path. A missing explicit file
	// is an error; a missing default file is not.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("pack.out_dir").
	Overrides map[string]interface{}

	SkipUserFile bool
	SkipEnv      bool
}

// Load builds the Config from all layers.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	if !opts.SkipUserFile {
		path := opts.ConfigFile
		explicit := path != ""
		if !explicit {
			path = paths.ConfigFile()
		}
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail(errors.DetailPath, path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		} else if explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path).
				WithDetail(errors.DetailPath, path)
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcess(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps TMPLFS_SECTION_KEY_PART to section.key_part. Only the first
// underscore separates the section, keys themselves use snake case.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func validate(cfg *Config) error {
	if _, err := pack.LookupMethod(cfg.Pack.Compression); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "unknown pack.compression %q", cfg.Pack.Compression).
			WithDetail("available", pack.Methods())
	}
	if cfg.Pack.Name == "" {
		return errors.New(errors.ErrConfigParse, "pack.name must not be empty")
	}
	if cfg.Manifest.File == "" {
		return errors.New(errors.ErrConfigParse, "manifest.file must not be empty")
	}
	if cfg.Packages.Namespace == "" {
		return errors.New(errors.ErrConfigParse, "packages.namespace must not be empty")
	}
	return nil
}
