package draws

import (
	"fmt"
	"sort"
	"strings"
)

// StatsReport is the result of one analysis run.
type StatsReport struct {
	GameName                string          `json:"game_name" yaml:"game_name"`
	LatestDate              string          `json:"latest_date" yaml:"latest_date"`
	Schedule                string          `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Rows                    int             `json:"rows" yaml:"rows"`
	Skipped                 int             `json:"skipped" yaml:"skipped"`
	PredictedMainNumbers    []Number        `json:"predicted_main_numbers" yaml:"predicted_main_numbers"`
	PredictedBonusNumbers   []Number        `json:"predicted_bonus_numbers" yaml:"predicted_bonus_numbers"`
	MainNumberProbabilities map[int]float64 `json:"main_number_probabilities" yaml:"main_number_probabilities"`
	BonusProbabilities      map[int]float64 `json:"bonus_probabilities" yaml:"bonus_probabilities"`
}

// FormatReport assembles a StatsReport from the computed pieces.
func FormatReport(ds GameDataset, mainFreq, bonusFreq FrequencyDistribution, predictedMain, predictedBonus []Number) *StatsReport {
	return &StatsReport{
		GameName:                ds.GameName,
		LatestDate:              ds.LatestDate,
		Rows:                    ds.Rows,
		Skipped:                 ds.Skipped,
		PredictedMainNumbers:    predictedMain,
		PredictedBonusNumbers:   predictedBonus,
		MainNumberProbabilities: mainFreq.Map(),
		BonusProbabilities:      bonusFreq.Map(),
	}
}

// ProbabilityEntry is one line of a probability listing.
type ProbabilityEntry struct {
	Value   int
	Percent float64
}

func (e ProbabilityEntry) String() string {
	return fmt.Sprintf("%d: %.2f%%", e.Value, e.Percent)
}

// ProbabilityEntries returns the displayable entries in ascending value
// order. The value-0 bucket is dropped while its percentage is zero.
func ProbabilityEntries(probabilities map[int]float64) []ProbabilityEntry {
	keys := make([]int, 0, len(probabilities))
	for k := range probabilities {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]ProbabilityEntry, 0, len(keys))
	for _, k := range keys {
		p := probabilities[k]
		if k == 0 && p == 0 {
			continue
		}
		out = append(out, ProbabilityEntry{Value: k, Percent: p})
	}
	return out
}

// ProbabilityListing renders the entries as "v: p%" joined by "; ".
func ProbabilityListing(probabilities map[int]float64) string {
	entries := ProbabilityEntries(probabilities)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}

// JoinNumbers renders numbers separated by ", ".
func JoinNumbers(ns []Number) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
