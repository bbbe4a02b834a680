package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvHome            = "CITYTABLE_HOME"
	EnvBaseURL         = "CITYTABLE_API_BASE_URL"
	EnvDataset         = "CITYTABLE_API_DATASET"
	EnvPageSize        = "CITYTABLE_API_PAGE_SIZE"
	EnvTimeout         = "CITYTABLE_API_TIMEOUT_SECONDS"
	EnvWeatherTemplate = "CITYTABLE_WEATHER_URL_TEMPLATE"
	EnvScrollThreshold = "CITYTABLE_UI_SCROLL_THRESHOLD"
	EnvCacheEnabled    = "CITYTABLE_CACHE_ENABLED"
	EnvCacheBackend    = "CITYTABLE_CACHE_BACKEND"
	EnvCacheDir        = "CITYTABLE_CACHE_DIR"
	EnvCacheTTL        = "CITYTABLE_CACHE_TTL_SECONDS"
	EnvRedisAddr       = "CITYTABLE_REDIS_ADDR"
	EnvRedisPassword   = "CITYTABLE_REDIS_PASSWORD"
	EnvRedisDB         = "CITYTABLE_REDIS_DB"
	EnvLogLevel        = "CITYTABLE_LOG_LEVEL"
	EnvLogFormat       = "CITYTABLE_LOG_FORMAT"
	EnvLogFile         = "CITYTABLE_LOG_FILE"
)

// LoadDotEnv loads .env from the working directory and from the config
// directory. Existing environment variables win; missing files are ignored.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	if dir, err := GetConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
}

// ApplyEnv overrides fields from environment variables. Unparseable numeric
// or boolean values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str(EnvBaseURL, &c.API.BaseURL)
	str(EnvDataset, &c.API.Dataset)
	num(EnvPageSize, &c.API.PageSize)
	num(EnvTimeout, &c.API.TimeoutSeconds)
	str(EnvWeatherTemplate, &c.Weather.URLTemplate)
	num(EnvScrollThreshold, &c.UI.ScrollThreshold)

	if v, ok := lookup(EnvCacheEnabled); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = b
		}
	}
	str(EnvCacheBackend, &c.Cache.Backend)
	str(EnvCacheDir, &c.Cache.Directory)
	num(EnvCacheTTL, &c.Cache.TTLSeconds)
	str(EnvRedisAddr, &c.Cache.Redis.Addr)
	str(EnvRedisPassword, &c.Cache.Redis.Password)
	num(EnvRedisDB, &c.Cache.Redis.DB)

	str(EnvLogLevel, &c.Logging.Level)
	str(EnvLogFormat, &c.Logging.Format)
	str(EnvLogFile, &c.Logging.File)
}

// GetConfigDir returns the citytable configuration directory,
// $CITYTABLE_HOME or ~/.citytable.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".citytable"), nil
}
