package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestindex/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

// cacheClearCommand removes cached results from the configured backend, or
// from every backend with --all (useful after switching cache_backend).
func (c *CLI) cacheClearCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			backends := []string{c.Config.CacheBackend}
			if all {
				backends = []string{backendFile, backendBadger}
			}
			total := 0
			for _, backend := range backends {
				n, err := c.clearBackend(cmd, backend, dir)
				if err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Debug("cleared cache", "backend", backend, "entries", n)
				total += n
			}

			printSuccess("Cleared %d cached results", total)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "clear every cache backend, not only the configured one")
	return cmd
}

func (c *CLI) clearBackend(cmd *cobra.Command, backend, dir string) (int, error) {
	store, err := c.openBackend(backend, dir)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		return 0, fmt.Errorf("cache backend %q cannot be cleared", backend)
	}
	return clearer.Clear(cmd.Context())
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
