package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/drawstats-cli/internal/config"
	"github.com/KaramelBytes/drawstats-cli/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set drawstats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "required_columns: %d\n", cfg.RequiredColumns)
		fmt.Fprintf(out, "main_range: %d\n", cfg.MainRange)
		fmt.Fprintf(out, "bonus_range: %d\n", cfg.BonusRange)
		fmt.Fprintf(out, "main_picks: %d\n", cfg.MainPicks)
		fmt.Fprintf(out, "bonus_picks: %d\n", cfg.BonusPicks)
		fmt.Fprintf(out, "predict_skip_invalid: %t\n", cfg.PredictSkipInvalid)
		if cfg.DrawSchedule != "" {
			fmt.Fprintf(out, "draw_schedule: %s\n", cfg.DrawSchedule)
		}
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "drive_base_url: %s\n", cfg.DriveBaseURL)
		fmt.Fprintf(out, "drive_api_key: %s\n", mask(cfg.DriveAPIKey))
		fmt.Fprintf(out, "drive_access_token: %s\n", mask(cfg.DriveAccessToken))
		fmt.Fprintf(out, "drive_page_size: %d\n", cfg.DrivePageSize)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		fmt.Fprintf(out, "server_addr: %s\n", cfg.ServerAddr)
		fmt.Fprintf(out, "max_upload_mb: %d\n", cfg.MaxUploadMB)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	positive := func(dst *int) error {
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid positive int for %s: %v", key, val)
		}
		*dst = i
		return nil
	}
	switch key {
	case "required_columns":
		if err := positive(&c.RequiredColumns); err != nil {
			return err
		}
		if c.RequiredColumns < 9 {
			return fmt.Errorf("required_columns must be at least 9")
		}
	case "main_range":
		return positive(&c.MainRange)
	case "bonus_range":
		return positive(&c.BonusRange)
	case "main_picks":
		return positive(&c.MainPicks)
	case "bonus_picks":
		return positive(&c.BonusPicks)
	case "drive_page_size":
		return positive(&c.DrivePageSize)
	case "http_timeout_sec":
		return positive(&c.HTTPTimeoutSec)
	case "retry_max_attempts":
		return positive(&c.RetryMaxAttempts)
	case "max_upload_mb":
		return positive(&c.MaxUploadMB)
	case "predict_skip_invalid":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for predict_skip_invalid: %w", err)
		}
		c.PredictSkipInvalid = b
	case "draw_schedule":
		c.DrawSchedule = val
	case "output_format":
		f := strings.ToLower(val)
		for _, known := range render.Formats() {
			if f == known {
				c.OutputFormat = f
				return nil
			}
		}
		return fmt.Errorf("invalid output_format: %s (use %s)", val, strings.Join(render.Formats(), ", "))
	case "drive_base_url":
		c.DriveBaseURL = val
	case "drive_api_key":
		c.DriveAPIKey = val
	case "drive_access_token":
		c.DriveAccessToken = val
	case "server_addr":
		c.ServerAddr = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
