package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/export"
	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
	"github.com/ArmaanSap/MeteorMadness2025/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect simulation run history",
	Long:  "Commands for listing, viewing, and exporting saved simulation runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		runs, err := st.ListRuns(ctx, store.RunFilter{Limit: limit, Offset: offset})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs export --

var runsExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a run's hazard zones",
	Long:  "Writes a run as GeoJSON (stdout or file), a polygon shapefile, or an XLSX briefing workbook.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs export")
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		switch format {
		case "geojson":
			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return eris.Wrap(err, "runs export: create output")
				}
				defer f.Close() //nolint:errcheck
				out = f
			}
			return export.WriteGeoJSON(out, run)
		case "shapefile":
			if output == "" {
				output = run.ID + ".shp"
			}
			if err := export.WriteShapefile(output, run); err != nil {
				return err
			}
		case "xlsx":
			if output == "" {
				output = run.ID + ".xlsx"
			}
			if err := export.WriteXLSX(output, run); err != nil {
				return err
			}
		default:
			return eris.Errorf("unsupported format %q (geojson, shapefile, xlsx)", format)
		}

		zap.L().Info("run exported",
			zap.String("run_id", run.ID),
			zap.String("format", format),
			zap.String("output", output),
		)
		return nil
	},
}

func init() {
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")
	runsListCmd.Flags().Int("offset", 0, "number of runs to skip")

	runsExportCmd.Flags().String("format", "geojson", "export format (geojson, shapefile, xlsx)")
	runsExportCmd.Flags().String("output", "", "output path (default stdout for geojson, <run-id>.<ext> otherwise)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLAT\tLON\tDIAMETER_M\tENERGY_MT\tDEATHS\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t---\t---\t----------\t---------\t------\t-------")

	for _, r := range runs {
		var energyMt, deaths float64
		if r.Report != nil {
			energyMt = r.Report.Zones.EnergyMt
			deaths = r.Report.TotalDeaths
		}
		_, _ = fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.0f\t%.2f\t%.0f\t%s\n",
			truncateID(r.ID),
			r.Scenario.Lat,
			r.Scenario.Lon,
			r.Scenario.DiameterM,
			energyMt,
			deaths,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
