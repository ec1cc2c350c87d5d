package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ArmaanSap/MeteorMadness2025/pkg/neo"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the NASA near-Earth-object catalog",
	Long:  "Commands for listing and inspecting NEO records used as simulation candidates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return cfg.Validate("catalog")
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a page of the NEO catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, _ := cmd.Flags().GetInt("page")

		asteroids, err := initNEO().Browse(cmd.Context(), page, 20)
		if err != nil {
			return eris.Wrap(err, "catalog list")
		}
		formatAsteroids(os.Stdout, asteroids)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <neo-id>",
	Short: "Show a single NEO record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initNEO().Lookup(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "catalog show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	},
}

var catalogFeedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List NEOs approaching Earth on a given date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		date := time.Now().UTC()
		if dateStr != "" {
			d, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return eris.Wrapf(err, "parse date %q", dateStr)
			}
			date = d
		}

		asteroids, err := initNEO().Feed(cmd.Context(), date)
		if err != nil {
			return eris.Wrap(err, "catalog feed")
		}
		if len(asteroids) == 0 {
			fmt.Fprintln(os.Stderr, "No close approaches on that date.")
			return nil
		}
		formatAsteroids(os.Stdout, asteroids)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().Int("page", 0, "catalog page number")
	catalogFeedCmd.Flags().String("date", "", "approach date (YYYY-MM-DD, default today)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogFeedCmd)
	rootCmd.AddCommand(catalogCmd)
}

// formatAsteroids writes a tabular NEO listing to w.
func formatAsteroids(out io.Writer, asteroids []neo.Asteroid) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tDIAMETER_M\tVELOCITY_KMH\tMISS_KM\tHAZARDOUS")
	_, _ = fmt.Fprintln(w, "--\t----\t----------\t------------\t-------\t---------")

	for _, a := range asteroids {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.0f\t%t\n",
			a.ID,
			a.Name,
			a.DiameterM,
			a.VelocityKmh,
			a.MissDistanceKm,
			a.Hazardous,
		)
	}
	_ = w.Flush()
}
