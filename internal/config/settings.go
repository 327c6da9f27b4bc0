package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/ukcalc/ukcalc/internal/calculation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to settings read from the environment (UKCALC_TAX_YEAR, UKCALC_LOGGING_LEVEL)
const EnvPrefix = "UKCALC"

// Settings are the user preferences read from ukcalc.yaml, the environment and flags
type Settings struct {
	TaxYear      string         `mapstructure:"tax_year"`
	TaxYearsFile string         `mapstructure:"tax_years_file"`
	Output       OutputSettings `mapstructure:"output"`
	Logging      LoggingConfig  `mapstructure:"logging"`
}

// OutputSettings select the report format
type OutputSettings struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputFile string `mapstructure:"output_file"`
}

// NewViper returns a viper instance with the defaults and environment binding set
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("tax_year", calculation.DefaultTaxYearID)
	v.SetDefault("tax_years_file", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.verbose", false)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// settingsFileNames are the names searched for when no settings path is given.
// Only these match, so an extensionless ukcalc binary in the directory is never read.
var settingsFileNames = []string{"ukcalc.yaml", "ukcalc.yml"}

// LoadSettings reads the settings file at path, or searches for ukcalc.yaml in the
// working directory and the user config directory when path is empty. A missing
// file leaves the defaults in place.
func LoadSettings(v *viper.Viper, path string) (*Settings, error) {
	if path == "" {
		path = findSettingsFile(settingsSearchDirs())
	}
	if path == "" {
		return decodeSettings(v)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	return decodeSettings(v)
}

func settingsSearchDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "ukcalc"))
	}
	return dirs
}

// findSettingsFile returns the first settings file found in dirs, or ""
func findSettingsFile(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range settingsFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}
	}
	return ""
}

func decodeSettings(v *viper.Viper) (*Settings, error) {
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	settings.normalize()
	return &settings, nil
}

func (s *Settings) normalize() {
	s.Output.Format = strings.ToLower(strings.TrimSpace(s.Output.Format))
	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	s.Logging.Format = strings.ToLower(strings.TrimSpace(s.Logging.Format))
	s.TaxYear = strings.TrimSpace(s.TaxYear)
}

// NewLogger builds a zap logger from the logging configuration. A non-empty
// levelOverride takes precedence over cfg.Level.
func NewLogger(cfg LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	if level == "" {
		level = "warn"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := cfg.Format
	if format == "" {
		format = "console"
	}

	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)
	zc.DisableStacktrace = true

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
