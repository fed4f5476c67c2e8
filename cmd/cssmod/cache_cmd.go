package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssmod/internal/naming"
	"go.trai.ch/zerr"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the compressed class name cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the next ID and entry count of a name cache",
	Long: `Print the next ID and entry count of a name cache. Without a path the
configured cache is used.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getString("cache", "")
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return zerr.New("no cache path given and none configured")
		}

		cache, err := naming.LoadCache(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "maxID: %d\n", cache.MaxID())
		fmt.Fprintf(out, "entries: %d\n", cache.Len())

		if keys, _ := cmd.Flags().GetBool("keys"); keys {
			for _, key := range cache.Keys() {
				id, _ := cache.Lookup(key)
				fmt.Fprintf(out, "%s %d\n", key, id)
			}
		}
		return nil
	},
}

func init() {
	cacheShowCmd.Flags().Bool("keys", false, "Also list every key with its ID")
	cacheCmd.AddCommand(cacheShowCmd)
}
