package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Analysis
	RequiredColumns    int    `mapstructure:"required_columns" yaml:"required_columns"`
	MainRange          int    `mapstructure:"main_range" yaml:"main_range"`
	BonusRange         int    `mapstructure:"bonus_range" yaml:"bonus_range"`
	MainPicks          int    `mapstructure:"main_picks" yaml:"main_picks"`
	BonusPicks         int    `mapstructure:"bonus_picks" yaml:"bonus_picks"`
	PredictSkipInvalid bool   `mapstructure:"predict_skip_invalid" yaml:"predict_skip_invalid"`
	DrawSchedule       string `mapstructure:"draw_schedule" yaml:"draw_schedule"`
	OutputFormat       string `mapstructure:"output_format" yaml:"output_format"`

	// Remote storage (Drive v3)
	DriveBaseURL     string `mapstructure:"drive_base_url" yaml:"drive_base_url"`
	DriveAPIKey      string `mapstructure:"drive_api_key" yaml:"drive_api_key"`
	DriveAccessToken string `mapstructure:"drive_access_token" yaml:"drive_access_token"`
	DrivePageSize    int    `mapstructure:"drive_page_size" yaml:"drive_page_size"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	// HTTP server
	ServerAddr  string `mapstructure:"server_addr" yaml:"server_addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// DefaultPath returns ~/.drawstats/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".drawstats", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.drawstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DRAWSTATS")
	v.AutomaticEnv()

	// Analysis defaults: a 4+1 game drawn from 1..35
	v.SetDefault("required_columns", 9)
	v.SetDefault("main_range", 35)
	v.SetDefault("bonus_range", 35)
	v.SetDefault("main_picks", 4)
	v.SetDefault("bonus_picks", 1)
	v.SetDefault("predict_skip_invalid", false)
	v.SetDefault("draw_schedule", "")
	v.SetDefault("output_format", "text")
	// Drive defaults
	v.SetDefault("drive_base_url", "https://www.googleapis.com/drive/v3")
	v.SetDefault("drive_api_key", "")
	v.SetDefault("drive_access_token", "")
	v.SetDefault("drive_page_size", 10)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	// Server defaults
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("max_upload_mb", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
