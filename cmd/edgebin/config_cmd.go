package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/edgebin/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show the effective configuration",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg.Redacted()
		if jsonOutput {
			printJSON(cmd.OutOrStdout(), c)
			return nil
		}

		out := cmd.OutOrStdout()
		if c.Path != "" {
			fmt.Fprintf(out, "# loaded from %s\n", c.Path)
		} else if p, err := config.DefaultPath(); err == nil {
			fmt.Fprintf(out, "# no config file (looked for %s)\n", p)
		}
		return toml.NewEncoder(out).Encode(c)
	},
}
