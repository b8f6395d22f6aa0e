package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qaim-b/the-green-pulse/internal/config"
	"github.com/qaim-b/the-green-pulse/internal/engine/cache"
)

// newCacheCmd creates the cache command group for the prediction cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Prediction cache commands"}
	cmd.AddCommand(newCacheStatsCmd(), newCacheClearCmd(), newCachePruneCmd())
	return cmd
}

// openConfiguredCache opens the cache for maintenance commands.
func openConfiguredCache(cmd *cobra.Command) (*cache.FileStore, error) {
	store, err := openCache(cmd, config.GetGlobalConfig())
	if err != nil {
		return nil, err
	}
	if !store.IsEnabled() {
		return nil, cache.ErrCacheDisabled
	}
	return store, nil
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, TTL and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openConfiguredCache(cmd)
			if err != nil {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			cmd.Printf("Directory: %s\n", store.GetDirectory())
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(store.GetTTL()))
			cmd.Printf("Entries:   %d\n", count)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached prediction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openConfiguredCache(cmd)
			if err != nil {
				return err
			}
			if err = store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Println("Prediction cache cleared")
			return nil
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cached predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openConfiguredCache(cmd)
			if err != nil {
				return err
			}
			before, _ := store.Count()
			if err = store.CleanupExpired(); err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			after, _ := store.Count()
			cmd.Printf("Removed %d expired entries\n", before-after)
			return nil
		},
	}
}
