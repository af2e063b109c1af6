package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obbardc/fancy-free-walks/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fancy-free-walks",
	Short: "Extract and rank walking routes from FancyFreeWalks map exports",
	Long:  "Reads a KMZ/KML map export, pulls out every walk with its length and distance from home, and exports the ranked list as CSV, shapefile or XLSX.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
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
