package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/citytable/internal/cache"
	"github.com/rshade/citytable/internal/config"
)

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closer, err := newCacheStore(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			count, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logger.Info().Str("operation", "cache_clear").Int("entries", count).Msg("cache cleared")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached pages.\n", count)
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command, which drops expired pages.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired pages from the file cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if cfg.Cache.Backend == config.CacheBackendRedis {
				fmt.Fprintln(cmd.OutOrStdout(), "Redis expires pages on its own; nothing to prune.")
				return nil
			}
			store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired pages.\n", removed)
			return nil
		},
	}
}

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache backend, TTL and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			store, closer, err := newCacheStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enabled:   %t\n", cfg.Cache.Enabled)
			fmt.Fprintf(out, "Backend:   %s\n", cfg.Cache.Backend)
			fmt.Fprintf(out, "TTL:       %s\n", cache.FormatDuration(time.Duration(cfg.Cache.TTLSeconds)*time.Second))

			if fs, ok := store.(*cache.FileStore); ok {
				fmt.Fprintf(out, "Directory: %s\n", fs.Directory())
				size, err := fs.Size()
				if err != nil {
					return fmt.Errorf("measuring cache: %w", err)
				}
				fmt.Fprintf(out, "Size:      %.1f KiB (limit %d MB)\n", float64(size)/1024, cfg.Cache.MaxSizeMB) //nolint:mnd // Bytes to KiB.
			} else {
				fmt.Fprintf(out, "Redis:     %s db %d\n", cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB)
				if rs, isRedis := store.(*cache.RedisStore); isRedis {
					if err := rs.Ping(cmd.Context()); err != nil {
						return fmt.Errorf("reaching redis: %w", err)
					}
				}
			}

			count, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			fmt.Fprintf(out, "Entries:   %d\n", count)
			return nil
		},
	}
}
