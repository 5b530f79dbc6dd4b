package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/KaramelBytes/drawstats-cli/internal/config"
	"github.com/KaramelBytes/drawstats-cli/internal/draws"
	"github.com/KaramelBytes/drawstats-cli/internal/source"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "drawstats",
	Short: "drawstats: frequency statistics and predictions from lottery drawing history",
	Long: `drawstats reads a lottery drawing history in CSV form (local file, stdin, an HTTP upload or
Google Drive) and reports the latest drawing date, per-number draw frequencies and the most
frequent numbers as a naive prediction for the next drawing.

Expected CSV rows (after a header line):
  gameName, month, day, year, num1, num2, num3, num4, bonus`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, draws.ErrEmptyDataset) {
			fmt.Fprintln(os.Stderr, "✗ Error:", draws.EmptyMessage)
		} else {
			fmt.Fprintln(os.Stderr, "✗ Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.drawstats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}

// analysisOptions derives engine options from the loaded config.
func analysisOptions() draws.Options {
	opt := draws.DefaultOptions()
	if cfg == nil {
		return opt
	}
	if cfg.RequiredColumns > 0 {
		opt.RequiredColumns = cfg.RequiredColumns
	}
	if cfg.MainRange > 0 {
		opt.MainRange = cfg.MainRange
	}
	if cfg.BonusRange > 0 {
		opt.BonusRange = cfg.BonusRange
	}
	if cfg.MainPicks > 0 {
		opt.MainPicks = cfg.MainPicks
	}
	if cfg.BonusPicks > 0 {
		opt.BonusPicks = cfg.BonusPicks
	}
	opt.SkipInvalid = cfg.PredictSkipInvalid
	opt.Schedule = cfg.DrawSchedule
	return opt
}

// newDriveClient builds the remote storage client from the loaded config.
func newDriveClient() *source.DriveClient {
	dc := source.DriveConfig{}
	if cfg != nil {
		dc = source.DriveConfig{
			BaseURL:     cfg.DriveBaseURL,
			APIKey:      cfg.DriveAPIKey,
			AccessToken: cfg.DriveAccessToken,
			PageSize:    cfg.DrivePageSize,
			HTTPTimeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
			RetryMax:    cfg.RetryMaxAttempts,
			BaseDelay:   time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.RetryMaxDelayMs) * time.Millisecond,
		}
	}
	return source.NewDriveClient(dc)
}
