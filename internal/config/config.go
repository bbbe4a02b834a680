package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/citytable/internal/cache"
)

// Defaults for the GeoNames dataset and UI behavior.
const (
	DefaultBaseURL         = "https://public.opendatasoft.com"
	DefaultDataset         = "geonames-all-cities-with-a-population-1000"
	DefaultPageSize        = 20
	DefaultTimeoutSeconds  = 10
	DefaultWeatherTemplate = "https://openweathermap.org/city/{id}"
	DefaultScrollThreshold = 3
	DefaultSuggestionLimit = 5
	DefaultCacheTTLSeconds = 3600
	DefaultCacheMaxSizeMB  = 50
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"

	// MaxPageSize is the largest page the records endpoint accepts.
	MaxPageSize = 100

	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"

	configFileName = "config.yaml"
	outputTypeFile = "file"
)

// Config is the complete citytable configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Weather WeatherConfig `yaml:"weather"`
	UI      UIConfig      `yaml:"ui"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`

	path string
}

// APIConfig points at the city records endpoint.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Dataset        string `yaml:"dataset"`
	PageSize       int    `yaml:"page_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// WeatherConfig controls row activation. {id} in URLTemplate is replaced with
// the city's geoname ID.
type WeatherConfig struct {
	URLTemplate string `yaml:"url_template"`
}

// UIConfig tunes the interactive table.
type UIConfig struct {
	// ScrollThreshold is how many rows from the bottom of loaded content
	// the view may get before the next page is requested.
	ScrollThreshold int  `yaml:"scroll_threshold"`
	SuggestionLimit int  `yaml:"suggestion_limit"`
	Mouse           bool `yaml:"mouse"`
}

// CacheConfig configures the optional page cache.
type CacheConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Backend    string      `yaml:"backend"`
	Directory  string      `yaml:"directory"`
	TTLSeconds int         `yaml:"ttl_seconds"`
	MaxSizeMB  int         `yaml:"max_size_mb"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Cache.Backend is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config populated with built-in defaults only.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), ".citytable")
	}

	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			Dataset:        DefaultDataset,
			PageSize:       DefaultPageSize,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Weather: WeatherConfig{URLTemplate: DefaultWeatherTemplate},
		UI: UIConfig{
			ScrollThreshold: DefaultScrollThreshold,
			SuggestionLimit: DefaultSuggestionLimit,
			Mouse:           true,
		},
		Cache: CacheConfig{
			Enabled:    false,
			Backend:    CacheBackendFile,
			Directory:  filepath.Join(dir, "cache"),
			TTLSeconds: DefaultCacheTTLSeconds,
			MaxSizeMB:  DefaultCacheMaxSizeMB,
			Redis:      RedisConfig{Addr: "127.0.0.1:6379"},
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join(dir, "logs", "citytable.log"),
		},
		path: filepath.Join(dir, configFileName),
	}
}

// New loads configuration from the default location: built-in defaults, then
// the YAML file (if present), then .env files and CITYTABLE_* variables.
// Problems reading the file are ignored so a broken file never blocks startup;
// `citytable config show` surfaces them through Load.
func New() *Config {
	LoadDotEnv()

	cfg := Default()
	if err := cfg.loadFile(cfg.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config file %s: %v\n", cfg.path, err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Load reads path on top of the defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.path
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the file this configuration was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url must not be empty"))
	}
	if c.API.Dataset == "" {
		errs = append(errs, errors.New("api.dataset must not be empty"))
	}
	if c.API.PageSize < 1 || c.API.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("api.page_size must be between 1 and %d, got %d", MaxPageSize, c.API.PageSize))
	}
	if c.API.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds must be >= 1, got %d", c.API.TimeoutSeconds))
	}
	if !strings.Contains(c.Weather.URLTemplate, "{id}") {
		errs = append(errs, errors.New("weather.url_template must contain {id}"))
	}
	if c.UI.ScrollThreshold < 0 {
		errs = append(errs, fmt.Errorf("ui.scroll_threshold must be >= 0, got %d", c.UI.ScrollThreshold))
	}
	if c.UI.SuggestionLimit < 1 {
		errs = append(errs, fmt.Errorf("ui.suggestion_limit must be >= 1, got %d", c.UI.SuggestionLimit))
	}
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis:
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be %q or %q, got %q",
			CacheBackendFile, CacheBackendRedis, c.Cache.Backend))
	}
	if err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
		errs = append(errs, fmt.Errorf("cache.ttl_seconds: %w", err))
	}

	return errors.Join(errs...)
}
