package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
)

type textRenderer struct{}

// Render writes a compact sectioned summary.
func (textRenderer) Render(w io.Writer, r *draws.StatsReport) error {
	var b strings.Builder
	b.WriteString("[DRAWING SUMMARY]\n")
	if r.GameName != "" {
		b.WriteString(fmt.Sprintf("Game: %s\n", r.GameName))
	}
	b.WriteString(fmt.Sprintf("Latest Drawing Date: %s\n", r.LatestDate))
	if r.Schedule != "" {
		b.WriteString(fmt.Sprintf("(%s)\n", r.Schedule))
	}
	if r.Skipped > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d (skipped %d)\n", r.Rows, r.Skipped))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}

	b.WriteString("\n[PREDICTION]\n")
	b.WriteString(fmt.Sprintf("Numbers: %s\n", draws.JoinNumbers(r.PredictedMainNumbers)))
	b.WriteString(fmt.Sprintf("Bonus Ball: %s\n", draws.JoinNumbers(r.PredictedBonusNumbers)))

	b.WriteString("\n[PROBABILITY DISTRIBUTION]\n")
	b.WriteString(fmt.Sprintf("Main Numbers: %s\n", draws.ProbabilityListing(r.MainNumberProbabilities)))
	b.WriteString(fmt.Sprintf("Bonus Ball: %s\n", draws.ProbabilityListing(r.BonusProbabilities)))

	_, err := io.WriteString(w, b.String())
	return err
}
