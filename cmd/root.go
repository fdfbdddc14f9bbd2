package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "directory-cli",
	Short: "Alumni directory with fuzzy dedup and natural-language search",
	Long:  "Imports member rosters from CSV, XLSX, and text dumps, resolves duplicate identities, infers professional attributes, and answers natural-language directory queries.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		mode := "cli"
		if cmd.Name() == "serve" {
			mode = "serve"
		}
		return cfg.Validate(mode)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
