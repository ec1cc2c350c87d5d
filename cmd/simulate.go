package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

var (
	simLat      float64
	simLon      float64
	simDiameter float64
	simMass     float64
	simVelocity float64
	simAdvisory bool
	simNoSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate the consequences of a single impact scenario",
	Long:  "Computes hazard zones and population-based casualty estimates for an asteroid impact at the given coordinates. Mass defaults to a rocky sphere of the given diameter.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !simNoSave {
			if err := cfg.Validate("simulate"); err != nil {
				return err
			}
		}

		mass := simMass
		if mass == 0 {
			mass = model.MassFromDiameter(simDiameter, model.RockyDensityKgM3)
		}
		scenario := model.Scenario{
			Lat:         simLat,
			Lon:         simLon,
			DiameterM:   simDiameter,
			MassKg:      mass,
			VelocityKmh: simVelocity,
		}

		estimator := initEstimator(nil)
		report, err := estimator.Estimate(ctx, scenario)
		if err != nil {
			return eris.Wrap(err, "simulate")
		}

		run := &model.Run{
			ID:        uuid.NewString(),
			Scenario:  scenario,
			Report:    report,
			CreatedAt: time.Now().UTC(),
		}

		if simAdvisory {
			gen := initAdvisory()
			if gen == nil {
				return eris.New("advisory requires IMPACT_ANTHROPIC_KEY")
			}
			text, err := gen.Generate(ctx, report)
			if err != nil {
				return eris.Wrap(err, "simulate advisory")
			}
			run.Advisory = text
		}

		if !simNoSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.SaveRun(ctx, run); err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simLat, "lat", 0, "impact latitude in degrees (required)")
	simulateCmd.Flags().Float64Var(&simLon, "lon", 0, "impact longitude in degrees (required)")
	simulateCmd.Flags().Float64Var(&simDiameter, "diameter", 0, "asteroid diameter in meters (required)")
	simulateCmd.Flags().Float64Var(&simMass, "mass", 0, "asteroid mass in kg (default: rocky sphere of --diameter)")
	simulateCmd.Flags().Float64Var(&simVelocity, "velocity", 0, "impact velocity in km/h (required)")
	simulateCmd.Flags().BoolVar(&simAdvisory, "advisory", false, "generate a civil-protection briefing")
	simulateCmd.Flags().BoolVar(&simNoSave, "no-save", false, "skip persisting the run")
	_ = simulateCmd.MarkFlagRequired("lat")
	_ = simulateCmd.MarkFlagRequired("lon")
	_ = simulateCmd.MarkFlagRequired("diameter")
	_ = simulateCmd.MarkFlagRequired("velocity")
	rootCmd.AddCommand(simulateCmd)
}
