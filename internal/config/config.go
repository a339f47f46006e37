package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultDataFile = "bank_data.json"

type Config struct {
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

type LedgerConfig struct {
	DataFile string `mapstructure:"dataFile"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// MetricsConfig.Textfile, when set, receives a Prometheus text exposition of
// the operation metrics at shutdown.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type AuthConfig struct {
	Enabled             bool     `mapstructure:"enabled"`
	AuthorizedPositions []string `mapstructure:"authorizedPositions"`
}

// RegisterFlags declares the command-line overrides understood by LoadConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", ".", "directory containing config.yml")
	fs.String("data-file", "", "path of the JSON ledger file")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
}

func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("ledger.dataFile", DefaultDataFile)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.authorizedPositions", []string{"Manager", "Loan Officer"})

	if flags != nil {
		if f := flags.Lookup("data-file"); f != nil {
			if err := v.BindPFlag("ledger.dataFile", f); err != nil {
				return nil, err
			}
		}
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag("logger.level", f); err != nil {
				return nil, err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("Config file not found, using defaults and environment variables.", "path", path)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Ledger.DataFile == "" {
		cfg.Ledger.DataFile = DefaultDataFile
	}

	return &cfg, nil
}
