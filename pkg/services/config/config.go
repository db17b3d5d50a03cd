package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CONDITION_ATLAS_REPORT_DATA_SHEET.
const EnvPrefix = "CONDITION_ATLAS"

type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Input    InputConfig   `mapstructure:"input"`
	Report   ReportConfig  `mapstructure:"report"`
	Publish  PublishConfig `mapstructure:"publish"`
	Server   ServerConfig  `mapstructure:"server"`
}

type InputConfig struct {
	CSVEncoding     string `mapstructure:"csv_encoding"`
	CSVPreambleRows int    `mapstructure:"csv_preamble_rows"`
}

type ReportConfig struct {
	DataSheet       string `mapstructure:"data_sheet"`
	ComparisonSheet string `mapstructure:"comparison_sheet"`
	AnnualBarColor  string `mapstructure:"annual_bar_color"`
	MonthlyBarColor string `mapstructure:"monthly_bar_color"`
}

type PublishConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

var defaults = map[string]any{
	"log_level":                "info",
	"input.csv_encoding":       "utf-8",
	"input.csv_preamble_rows":  2,
	"report.data_sheet":        "data",
	"report.comparison_sheet":  "comparison",
	"report.annual_bar_color":  "#638EC6",
	"report.monthly_bar_color": "#63BE7B",
	"publish.bucket":           "",
	"publish.prefix":           "",
	"publish.region":           "",
	"server.host":              "127.0.0.1",
	"server.port":              "8080",
}

// Load reads the optional config file at path; an empty path uses defaults and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Report.DataSheet == "" || c.Report.ComparisonSheet == "" {
		return fmt.Errorf("sheet names cannot be empty")
	}
	if c.Report.DataSheet == c.Report.ComparisonSheet {
		return fmt.Errorf("data and comparison sheets must differ, both are %q", c.Report.DataSheet)
	}
	if c.Input.CSVPreambleRows < 0 {
		return fmt.Errorf("csv_preamble_rows cannot be negative")
	}
	return nil
}
