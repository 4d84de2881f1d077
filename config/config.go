package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DefaultUsername is the profile reported on when GITHUB_USERNAME is
// not set.
const DefaultUsername = "octocat"

const maxPageSize = 100

// Config holds all configuration for the application
type Config struct {
	Username             string
	Token                string
	OutputDir            string
	LogLevel             string
	HTTPTimeout          time.Duration
	PageSize             int
	RecentActivityDays   int
	ChartLanguageLimit   int
	FoldThresholdPercent float64
	ReportTopLanguages   int
	RequestPause         time.Duration
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{}
}

// Load loads configuration from a .env file and environment variables.
// Every field has a default; a missing token only degrades the GitHub
// rate limits.
func (c *Config) Load() error {
	// Set up Viper
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("GITHUB_USERNAME", DefaultUsername)
	viper.SetDefault("GITHUB_TOKEN", "")
	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	viper.SetDefault("PAGE_SIZE", maxPageSize)
	viper.SetDefault("RECENT_ACTIVITY_DAYS", 30)
	viper.SetDefault("CHART_LANGUAGE_LIMIT", 10)
	viper.SetDefault("FOLD_THRESHOLD_PERCENT", 1.5)
	viper.SetDefault("REPORT_TOP_LANGUAGES", 5)
	viper.SetDefault("REQUEST_PAUSE", 100*time.Millisecond)

	// Read .env file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	c.Username = viper.GetString("GITHUB_USERNAME")
	if c.Username == "" {
		c.Username = DefaultUsername
	}
	c.Token = viper.GetString("GITHUB_TOKEN")

	c.OutputDir = viper.GetString("OUTPUT_DIR")
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	c.LogLevel = viper.GetString("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	c.HTTPTimeout = viper.GetDuration("HTTP_TIMEOUT")
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}

	c.PageSize = viper.GetInt("PAGE_SIZE")
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		c.PageSize = maxPageSize
	}

	c.RecentActivityDays = viper.GetInt("RECENT_ACTIVITY_DAYS")
	if c.RecentActivityDays < 1 {
		c.RecentActivityDays = 30
	}

	c.ChartLanguageLimit = viper.GetInt("CHART_LANGUAGE_LIMIT")
	if c.ChartLanguageLimit < 1 {
		c.ChartLanguageLimit = 10
	}

	c.FoldThresholdPercent = viper.GetFloat64("FOLD_THRESHOLD_PERCENT")
	if c.FoldThresholdPercent < 0 || c.FoldThresholdPercent > 100 {
		c.FoldThresholdPercent = 1.5
	}

	c.ReportTopLanguages = viper.GetInt("REPORT_TOP_LANGUAGES")
	if c.ReportTopLanguages < 1 {
		c.ReportTopLanguages = 5
	}

	c.RequestPause = viper.GetDuration("REQUEST_PAUSE")
	if c.RequestPause < 0 {
		c.RequestPause = 0
	}

	return nil
}
