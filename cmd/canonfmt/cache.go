package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"canonfmt/internal/fmtcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the formatted-content cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached formatting verdict",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	cache, err := fmtcache.Open("canonfmt")
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "cleared %s\n", cache.Dir())
	return nil
}
