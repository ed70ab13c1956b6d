package cli

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nestindex/pkg/errors"
	"github.com/matzehuels/nestindex/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	backendFile   = "file"
	backendBadger = "badger"
)

// Config holds user defaults read from the config file.
// Command-line flags override every value.
type Config struct {
	Circular     bool   `toml:"circular" yaml:"circular"`
	Reversals    bool   `toml:"reversals" yaml:"reversals"`
	Policy       string `toml:"policy" yaml:"policy"`
	Dedupe       bool   `toml:"dedupe" yaml:"dedupe"`
	Jobs         int    `toml:"jobs" yaml:"jobs"`
	NoCache      bool   `toml:"no_cache" yaml:"no_cache"`
	CacheTTL     string `toml:"cache_ttl" yaml:"cache_ttl"`
	CacheBackend string `toml:"cache_backend" yaml:"cache_backend"`
}

// defaultConfig returns the values used when no config file exists.
func defaultConfig() Config {
	return Config{
		Policy:       pipeline.DefaultPolicy,
		Dedupe:       true,
		CacheBackend: backendFile,
	}
}

// TTL parses CacheTTL. An empty value means the pipeline default.
func (c Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid cache_ttl %q", c.CacheTTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache_ttl must not be negative, got %s", d)
	}
	return d, nil
}

func (c Config) validate() error {
	switch c.CacheBackend {
	case backendFile, backendBadger:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache_backend %q (must be one of: file, badger)", c.CacheBackend)
	}
	if c.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jobs must not be negative, got %d", c.Jobs)
	}
	_, err := c.TTL()
	return err
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields the defaults; a missing
// explicit file is an error. Files ending in .yaml or .yml are read as YAML,
// everything else as TOML.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		err = decodeTOML(data, &cfg)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, cfg.validate()
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}
