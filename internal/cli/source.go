package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rshade/citytable/internal/cache"
	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/config"
	"github.com/rshade/citytable/pkg/version"
)

// newCacheStore builds the configured cache backend. The returned closer
// releases backend connections and is never nil.
func newCacheStore(cfg *config.Config) (cache.Store, io.Closer, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := cache.NewRedisStore(cache.RedisOptions{
			Addr:       cfg.Cache.Redis.Addr,
			Password:   cfg.Cache.Redis.Password,
			DB:         cfg.Cache.Redis.DB,
			TTLSeconds: cfg.Cache.TTLSeconds,
		})
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf("creating redis cache: %w", err)
		}
		return store, store, nil
	default:
		store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf("creating file cache: %w", err)
		}
		return store, nopCloser{}, nil
	}
}

// newCityClient builds an API client from the global configuration, with the
// page cache attached when enabled.
func newCityClient() (*cities.Client, io.Closer) {
	cfg := config.GetGlobalConfig()

	opts := []cities.ClientOption{
		cities.WithBaseURL(cfg.API.BaseURL),
		cities.WithDataset(cfg.API.Dataset),
		cities.WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
		cities.WithUserAgent(version.UserAgent()),
	}

	var closer io.Closer = nopCloser{}
	if cfg.Cache.Enabled {
		store, c, err := newCacheStore(cfg)
		if err != nil {
			logger.Warn().Err(err).Str("operation", "cache_init").Msg("continuing without page cache")
		} else {
			opts = append(opts, cities.WithCache(store))
			closer = c
		}
	}

	return cities.NewClient(opts...), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
