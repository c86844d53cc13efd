package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/edgebin/internal/config"
	"github.com/alfredjeanlab/edgebin/internal/ui"
)

var (
	jsonOutput bool
	configPath string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "edgebin <command>",
	Short:        "Convert text edge lists into binary edge record files",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath, true)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		ui.SetColor(ui.ShouldUseColor(os.Stdout))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $EDGEBIN_CONFIG or ~/.config/edgebin/config.toml)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "convert", Title: "Conversion:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Conversion
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(infoCmd)

	// System
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
