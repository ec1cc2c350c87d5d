package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

const systemPrompt = "You are an emergency management advisor. Given asteroid " +
	"impact consequence estimates, write a concise civil-protection briefing: " +
	"lead with the headline threat, then evacuation guidance by hazard zone, " +
	"then secondary hazards. Plain language, no markdown, at most 250 words."

// Generator turns a casualty report into a civil-protection briefing.
type Generator struct {
	client    Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator. maxTokens bounds the briefing length.
func NewGenerator(client Client, modelID string, maxTokens int64) *Generator {
	return &Generator{client: client, model: modelID, maxTokens: maxTokens}
}

// Generate produces a briefing for the given report.
func (g *Generator) Generate(ctx context.Context, report *model.CasualtyReport) (string, error) {
	if report == nil {
		return "", eris.New("advisory: nil report")
	}

	resp, err := g.client.CreateMessage(ctx, MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    systemPrompt,
		Prompt:    buildPrompt(report),
	})
	if err != nil {
		return "", eris.Wrap(err, "advisory: generate")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", eris.New("advisory: empty response")
	}

	zap.L().Info("advisory generated",
		zap.Float64("lat", report.Scenario.Lat),
		zap.Float64("lon", report.Scenario.Lon),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)
	return text, nil
}

// buildPrompt flattens the report into labeled lines the model can cite.
func buildPrompt(report *model.CasualtyReport) string {
	s := report.Scenario
	z := report.Zones

	var b strings.Builder
	fmt.Fprintf(&b, "Impact site: %.4f, %.4f\n", s.Lat, s.Lon)
	fmt.Fprintf(&b, "Asteroid: diameter %.0f m, mass %.3e kg, velocity %.0f km/h\n",
		s.DiameterM, s.MassKg, s.VelocityKmh)
	fmt.Fprintf(&b, "Impact energy: %.2f megatons TNT\n", z.EnergyMt)
	fmt.Fprintf(&b, "Crater radius: %.2f km (population %.0f, no survivors expected)\n",
		z.CraterRadiusKm, report.PopCrater)
	fmt.Fprintf(&b, "Severe blast radius: %.1f km (population %.0f)\n",
		z.ShockwaveKm, report.PopShockwave)
	fmt.Fprintf(&b, "Hurricane-force winds out to: %.1f km\n", z.WindKm)
	fmt.Fprintf(&b, "Seismic magnitude: %.1f\n", z.Magnitude)
	fmt.Fprintf(&b, "Strong shaking radius: %.1f km (population %.0f)\n",
		z.StrongShakingKm, report.PopStrongSeismic)
	fmt.Fprintf(&b, "Light shaking felt out to: %.1f km\n", z.LightShakingKm)
	if z.Water && z.Tsunami != nil {
		fmt.Fprintf(&b, "Ocean impact: tsunami wave %.0f m high, danger radius %.0f km (coastal population %.0f)\n",
			z.Tsunami.WaveHeightM, z.Tsunami.RadiusKm, report.PopTsunami)
	} else {
		b.WriteString("Land impact: no tsunami expected\n")
	}
	fmt.Fprintf(&b, "Estimated fatalities: %.0f\n", report.TotalDeaths)
	return b.String()
}
