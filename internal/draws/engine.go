package draws

import "errors"

// ErrEmptyDataset is returned when the input holds no acceptable data rows.
var ErrEmptyDataset = errors.New("the CSV file is empty or invalid")

// EmptyMessage is the user-facing text for ErrEmptyDataset.
const EmptyMessage = "The CSV file is empty or invalid."

// Options controls the analysis.
type Options struct {
	// RequiredColumns is the minimum field count for a row; values below
	// MinColumns are raised to it.
	RequiredColumns int
	// MainRange and BonusRange bound the frequency buckets.
	MainRange  int
	BonusRange int
	// MainPicks and BonusPicks are the prediction sizes.
	MainPicks  int
	BonusPicks int
	// SkipInvalid keeps unparsable cells out of the prediction. Frequencies
	// exclude them regardless.
	SkipInvalid bool
	// Schedule is an optional note copied into the report.
	Schedule string
}

// DefaultOptions returns the settings for a 4+1 game drawn from 1..35.
func DefaultOptions() Options {
	return Options{
		RequiredColumns: MinColumns,
		MainRange:       35,
		BonusRange:      35,
		MainPicks:       4,
		BonusPicks:      1,
	}
}

// Analyze runs the whole pipeline over csvText.
func Analyze(csvText string, opt Options) (*StatsReport, error) {
	ds := ParseDataset(csvText, opt.RequiredColumns)
	if ds.Empty() {
		return nil, ErrEmptyDataset
	}
	return Summarize(ds, opt), nil
}

// Summarize computes the report for an already parsed dataset.
func Summarize(ds GameDataset, opt Options) *StatsReport {
	mainFreq := ComputeFrequencies(ds.MainNumbers, opt.MainRange)
	bonusFreq := ComputeFrequencies(ds.BonusNumbers, opt.BonusRange)

	mainPool, bonusPool := ds.MainNumbers, ds.BonusNumbers
	if opt.SkipInvalid {
		mainPool, bonusPool = ValidOnly(mainPool), ValidOnly(bonusPool)
	}
	rep := FormatReport(ds, mainFreq, bonusFreq,
		MostFrequent(mainPool, opt.MainPicks),
		MostFrequent(bonusPool, opt.BonusPicks))
	rep.Schedule = opt.Schedule
	return rep
}
