package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/drawstats-cli/internal/draws"
	"github.com/KaramelBytes/drawstats-cli/internal/render"
	"github.com/KaramelBytes/drawstats-cli/internal/utils"
	"github.com/spf13/cobra"
)

// reportFlags are the analysis/output flags shared by commands that
// produce a report.
type reportFlags struct {
	format      string
	output      string
	mainRange   int
	bonusRange  int
	picks       int
	bonusPicks  int
	columns     int
	skipInvalid bool
	schedule    string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(render.Formats(), "|")+" (default from config, else text)")
	fl.StringVarP(&f.output, "output", "o", "", "write the report to this path instead of stdout")
	fl.IntVar(&f.mainRange, "range", 0, "highest main number (overrides config)")
	fl.IntVar(&f.bonusRange, "bonus-range", 0, "highest bonus number (overrides config)")
	fl.IntVar(&f.picks, "picks", 0, "how many main numbers to predict (overrides config)")
	fl.IntVar(&f.bonusPicks, "bonus-picks", 0, "how many bonus numbers to predict (overrides config)")
	fl.IntVar(&f.columns, "columns", 0, "minimum fields per row (at least 9)")
	fl.BoolVar(&f.skipInvalid, "skip-invalid", false, "leave unparsable cells out of the prediction")
	fl.StringVar(&f.schedule, "schedule", "", "draw schedule note shown with the latest date")
}

func (f *reportFlags) options(cmd *cobra.Command) draws.Options {
	opt := analysisOptions()
	fl := cmd.Flags()
	if fl.Changed("range") && f.mainRange > 0 {
		opt.MainRange = f.mainRange
	}
	if fl.Changed("bonus-range") && f.bonusRange > 0 {
		opt.BonusRange = f.bonusRange
	}
	if fl.Changed("picks") && f.picks >= 0 {
		opt.MainPicks = f.picks
	}
	if fl.Changed("bonus-picks") && f.bonusPicks >= 0 {
		opt.BonusPicks = f.bonusPicks
	}
	if fl.Changed("columns") && f.columns > 0 {
		opt.RequiredColumns = f.columns
	}
	if fl.Changed("skip-invalid") {
		opt.SkipInvalid = f.skipInvalid
	}
	if fl.Changed("schedule") {
		opt.Schedule = f.schedule
	}
	return opt
}

func (f *reportFlags) outputFormat() string {
	if f.format != "" {
		return f.format
	}
	if cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return "text"
}

// analyzeAndEmit runs the engine over text and writes the rendered report.
func (f *reportFlags) analyzeAndEmit(cmd *cobra.Command, text, origin string) error {
	opt := f.options(cmd)
	debugf("analyzing %s (%d bytes, range %d/%d, picks %d/%d)", origin, len(text), opt.MainRange, opt.BonusRange, opt.MainPicks, opt.BonusPicks)
	rep, err := draws.Analyze(text, opt)
	if err != nil {
		return err
	}
	debugf("accepted %d rows, skipped %d", rep.Rows, rep.Skipped)
	if debug && rep.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: skipped %d row(s) with fewer than %d fields\n", rep.Skipped, max(opt.RequiredColumns, draws.MinColumns))
	}
	out, err := render.Bytes(f.outputFormat(), rep)
	if err != nil {
		return err
	}
	if f.output != "" {
		if err := utils.SafeWriteFile(f.output, out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote report to %s\n", f.output)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
