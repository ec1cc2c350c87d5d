package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/fetcher"
	"github.com/ArmaanSap/MeteorMadness2025/internal/raster"
)

var rasterCmd = &cobra.Command{
	Use:   "raster",
	Short: "Manage the population raster dataset",
}

var rasterFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the configured population dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rawURL, _ := cmd.Flags().GetString("url")
		if rawURL == "" {
			rawURL = cfg.Raster.DownloadURL
		}
		if rawURL == "" {
			return eris.New("no dataset URL configured (set IMPACT_RASTER_DOWNLOAD_URL or pass --url)")
		}

		if err := fetcher.FetchDataset(cmd.Context(), rawURL, cfg.Raster.Path); err != nil {
			return eris.Wrap(err, "raster fetch")
		}
		zap.L().Info("raster dataset ready", zap.String("path", cfg.Raster.Path))
		return nil
	},
}

var rasterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the loaded population grid's dimensions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		grid, err := raster.LoadASC(cfg.Raster.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "No usable raster at %s; estimates will degrade to zero.\n", cfg.Raster.Path)
			return eris.Wrap(err, "raster status")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "Path:\t%s\n", cfg.Raster.Path)
		_, _ = fmt.Fprintf(w, "Columns:\t%d\n", grid.Cols())
		_, _ = fmt.Fprintf(w, "Rows:\t%d\n", grid.Rows())
		_, _ = fmt.Fprintf(w, "Cell size:\t%g deg\n", grid.CellSize())

		pop := raster.New(grid)
		_, _ = fmt.Fprintf(w, "Pop within 100 km of (0, 0):\t%.0f\n", pop.PopulationWithinRadius(0, 0, 100))
		_ = w.Flush()
		return nil
	},
}

func init() {
	rasterFetchCmd.Flags().String("url", "", "dataset URL (default from config)")

	rasterCmd.AddCommand(rasterFetchCmd)
	rasterCmd.AddCommand(rasterStatusCmd)
	rootCmd.AddCommand(rasterCmd)
}
