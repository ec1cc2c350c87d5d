package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "impact",
	Short: "Asteroid impact consequence engine",
	Long:  "Estimates physical effects and human consequences of asteroid impacts: crater, blast, seismic shaking, tsunami, and population exposure from gridded census rasters.",
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
