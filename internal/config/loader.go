package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "MOLGRAPH"

// defaultConfigName is looked up in the search paths when no explicit file is
// given.
const defaultConfigName = "molgraph"

// Sentinel errors wrapped by Load so callers can tell failure classes apart
// with errors.Is.
var (
	ErrConfigFileNotFound = stderrors.New("config: file not found")
	ErrConfigParseError   = stderrors.New("config: parse error")
	ErrConfigValidation   = stderrors.New("config: validation failed")
)

// ─────────────────────────────────────────────────────────────────────────────
// Load options
// ─────────────────────────────────────────────────────────────────────────────

type loadOptions struct {
	configPath  string
	searchPaths []string
	overrides   map[string]interface{}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath reads exactly this file.  A missing file is an error.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.configPath = path }
}

// WithSearchPaths looks for molgraph.yaml in each directory in turn.  Not
// finding one is not an error.
func WithSearchPaths(paths ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// WithOverrides sets keys with the highest precedence, above file and
// environment.  The CLI uses it for flags such as --log-level.
func WithOverrides(values map[string]interface{}) LoadOption {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// newViper builds a pre-configured Viper instance: YAML file type, MOLGRAPH_
// env prefix, automatic env binding, a "." → "_" key replacer so that
// "dataset.root" resolves to MOLGRAPH_DATASET_ROOT, and every known key
// registered with its default.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, val := range defaultKeys {
		v.SetDefault(k, val)
	}
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// Loading
// ─────────────────────────────────────────────────────────────────────────────

// Load reads configuration from (in increasing precedence) defaults, the
// config file, MOLGRAPH_* environment variables and overrides, then applies
// defaults and validates.
func Load(opts ...LoadOption) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	v := newViper()
	if err := readConfigFile(v, o); err != nil {
		return nil, err
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}

	return unmarshalAndFinalize(v)
}

func readConfigFile(v *viper.Viper, o *loadOptions) error {
	switch {
	case o.configPath != "":
		if _, err := os.Stat(o.configPath); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrConfigFileNotFound, o.configPath, err)
		}
		v.SetConfigFile(o.configPath)
	case len(o.searchPaths) > 0:
		v.SetConfigName(defaultConfigName)
		for _, p := range o.searchPaths {
			v.AddConfigPath(p)
		}
	default:
		return nil
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}
	return nil
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed Config
// whenever the file is written.  Configs returned earlier by Load are left
// untouched; applying the change is up to onChange.  A change that fails to parse or validate is
// reported to onError (when non-nil) and onChange is not called.
//
// Watch is non-blocking; viper runs the fsnotify watcher in the background.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

//Personal.AI order the ending
