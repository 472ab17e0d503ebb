package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// EnvPrefix is prepended to the environment variable form of every setting.
	EnvPrefix = "NVS"

	configKey    = "config"
	logLevelKey  = "log.level"
	logFormatKey = "log.format"
	timezoneKey  = "timezone"
)

// AddCommonFlags registers the flags shared by every binary: config file, logging and timezone.
func AddCommonFlags(flags *pflag.FlagSet) {
	flags.String(configKey, "", "Path to a yaml, toml or json config file")
	flags.String(logLevelKey, "info", "Minimum level to log (debug, info, warn, error)")
	flags.String(logFormatKey, "console", "Log encoding, console or json")
	flags.String(timezoneKey, "", "IANA timezone the schedule is expressed in; local time if empty")
}

// Load parses the command line and layers flags, NVS_ prefixed environment variables,
// a .env file in the working directory and the optional config file into one viper instance.
func Load(flags *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if path := v.GetString(configKey); len(path) > 0 {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %q: %w", path, err)
		}
	}

	return v, nil
}

// NewLogger builds a logger from the "log.level" and "log.format" settings.
// Logs are written to stderr so they do not interleave with console output.
func NewLogger(v *viper.Viper) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if v.GetString(logFormatKey) == "json" {
		cfg = zap.NewProductionConfig()
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(v.GetString(logLevelKey))); err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Location returns the configured timezone, or the local timezone if none is set.
func Location(v *viper.Viper) (*time.Location, error) {
	name := v.GetString(timezoneKey)
	if len(name) < 1 {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
