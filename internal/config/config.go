package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/spf13/viper"

	"github.com/truesize/engine/internal/splitter"
	"github.com/truesize/engine/pkg/core"
)

// FileName is the JSON config file looked up in the config directory.
const FileName = "truesize.cfg.json"

// Environment variables override the file, e.g. TRUESIZE_LOGLEVEL or
// TRUESIZE_SPLIT_THRESHOLDKM2.
const envPrefix = "TRUESIZE"

// LabelConfig is one split label as written in the config file.
type LabelConfig struct {
	Name     string `json:"name" mapstructure:"name"`
	IDSuffix string `json:"idSuffix" mapstructure:"idSuffix"`
}

func (l LabelConfig) label() (splitter.Label, error) {
	if l.Name == "" || !core.ValidID(l.IDSuffix) {
		return splitter.Label{}, fmt.Errorf("invalid label %q/%q", l.Name, l.IDSuffix)
	}
	return splitter.Label{Name: l.Name, IDSuffix: l.IDSuffix}, nil
}

// RegionConfig adds or replaces a named region for split parts.
type RegionConfig struct {
	AdminCode string  `json:"adminCode" mapstructure:"adminCode"`
	Lng       float64 `json:"lng" mapstructure:"lng"`
	Lat       float64 `json:"lat" mapstructure:"lat"`
	Name      string  `json:"name" mapstructure:"name"`
	IDSuffix  string  `json:"idSuffix" mapstructure:"idSuffix"`
}

// GraylogConfig holds the GELF sink settings
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level   string        `json:"logLevel" mapstructure:"logLevel"`
	Dir     string        `json:"logsDir" mapstructure:"logsDir"`
	Backend string        `json:"logBackend" mapstructure:"logBackend"`
	Graylog GraylogConfig `json:"graylog" mapstructure:"graylog"`
}

// OTelConfig holds OpenTelemetry metrics settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	ExportInterval time.Duration `json:"exportInterval" mapstructure:"exportInterval"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("logBackend", "slog")

	viper.SetDefault("dataFile", "./countries.geojson")
	viper.SetDefault("ingest.workers", 0)

	viper.SetDefault("split.thresholdKm2", splitter.DefaultThresholdKm2)

	viper.SetDefault("similarity.tolerance", 0.2)
	viper.SetDefault("simplify.tolerance", 0.01)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "truesize")
	viper.SetDefault("otel.exportInterval", "1m")
}

// Load reads configuration from the JSON file in configDir and sets default
// values. A .env file next to it is loaded into the environment first;
// variables already set win.
func Load(configDir string) error {
	setDefaults()

	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetLogConfig returns the logging settings.
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:   viper.GetString("logLevel"),
		Dir:     viper.GetString("logsDir"),
		Backend: strings.ToLower(viper.GetString("logBackend")),
		Graylog: GraylogConfig{
			Enabled: viper.GetBool("graylog.enabled"),
			Address: viper.GetString("graylog.address"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry metrics settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		ExportInterval: viper.GetDuration("otel.exportInterval"),
	}
}

// GetSplitterConfig layers the configured threshold, mainland labels and
// regions over splitter.DefaultConfig.
func GetSplitterConfig() (splitter.Config, error) {
	cfg := splitter.DefaultConfig()
	cfg.ThresholdKm2 = viper.GetFloat64("split.thresholdKm2")

	var labels map[string]LabelConfig
	if err := viper.UnmarshalKey("split.mainlandLabels", &labels); err != nil {
		return splitter.Config{}, fmt.Errorf("decoding split.mainlandLabels: %w", err)
	}
	for code, l := range labels {
		label, err := l.label()
		if err != nil {
			return splitter.Config{}, fmt.Errorf("split.mainlandLabels.%s: %w", code, err)
		}
		// viper lower-cases map keys; admin codes are upper case
		cfg.MainlandLabels[strings.ToUpper(code)] = label
	}

	var regions []RegionConfig
	if err := viper.UnmarshalKey("split.regions", &regions); err != nil {
		return splitter.Config{}, fmt.Errorf("decoding split.regions: %w", err)
	}
	for i, r := range regions {
		label, err := LabelConfig{Name: r.Name, IDSuffix: r.IDSuffix}.label()
		if err != nil {
			return splitter.Config{}, fmt.Errorf("split.regions[%d]: %w", i, err)
		}
		key := splitter.KeyFor(strings.ToUpper(r.AdminCode), orb.Point{r.Lng, r.Lat})
		cfg.Regions[key] = label
	}

	return cfg, nil
}
