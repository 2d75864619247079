package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truesize/engine/internal/splitter"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"logLevel": "debug",
		"logBackend": "zerolog",
		"split": { "thresholdKm2": 250000 },
		"graylog": { "enabled": true, "address": "10.0.0.1:12201" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 250000.0, GetFloat("split.thresholdKm2"))

	logCfg := GetLogConfig()
	assert.Equal(t, "zerolog", logCfg.Backend)
	assert.True(t, logCfg.Graylog.Enabled)
	assert.Equal(t, "10.0.0.1:12201", logCfg.Graylog.Address)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, "slog", viper.GetString("logBackend"))
	assert.Equal(t, "./countries.geojson", viper.GetString("dataFile"))
	assert.Equal(t, float64(splitter.DefaultThresholdKm2), viper.GetFloat64("split.thresholdKm2"))
	assert.Equal(t, 0.2, viper.GetFloat64("similarity.tolerance"))
	assert.Equal(t, 0.01, viper.GetFloat64("simplify.tolerance"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
	// defaults are still usable
	assert.Equal(t, "info", GetString("logLevel"))
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("TRUESIZE_LOGLEVEL", "warn")
	t.Setenv("TRUESIZE_SIMILARITY_TOLERANCE", "0.35")

	dir := t.TempDir()
	writeConfig(t, dir, `{"logLevel": "debug"}`)
	require.NoError(t, Load(dir))

	assert.Equal(t, "warn", GetString("logLevel"))
	assert.Equal(t, 0.35, GetFloat("similarity.tolerance"))
}

func TestLoad_DotEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { os.Unsetenv("TRUESIZE_LOGSDIR") })

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRUESIZE_LOGSDIR=/var/log/truesize\n"), 0644))
	require.NoError(t, Load(dir))

	assert.Equal(t, "/var/log/truesize", GetString("logsDir"))
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetFloat(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testFloat", 0.5)
	assert.Equal(t, 0.5, GetFloat("testFloat"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetSplitterConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, Load(dir))

	cfg, err := GetSplitterConfig()
	require.NoError(t, err)
	assert.Equal(t, splitter.DefaultConfig(), cfg)
}

func TestGetSplitterConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{
		"split": {
			"thresholdKm2": 100000,
			"mainlandLabels": {
				"TST": { "name": "Core", "idSuffix": "CORE" },
				"USA": { "name": "Lower 48", "idSuffix": "L48" }
			},
			"regions": [
				{ "adminCode": "tst", "lng": 61, "lat": 34, "name": "Far Isle", "idSuffix": "FAR" }
			]
		}
	}`)
	require.NoError(t, Load(dir))

	cfg, err := GetSplitterConfig()
	require.NoError(t, err)
	assert.Equal(t, 100000.0, cfg.ThresholdKm2)
	assert.Equal(t, splitter.Label{Name: "Core", IDSuffix: "CORE"}, cfg.MainlandLabels["TST"])
	assert.Equal(t, splitter.Label{Name: "Lower 48", IDSuffix: "L48"}, cfg.MainlandLabels["USA"])
	assert.Equal(t, splitter.Label{Name: "Metropolitan", IDSuffix: "METRO"}, cfg.MainlandLabels["FRA"])
	assert.Equal(t, splitter.Label{Name: "Far Isle", IDSuffix: "FAR"},
		cfg.Regions[splitter.RegionKey{AdminCode: "TST", Lng: 60, Lat: 30}])
}

func TestGetSplitterConfig_InvalidLabel(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{"split": {"mainlandLabels": {"TST": {"name": "Core", "idSuffix": "A:B"}}}}`)
	require.NoError(t, Load(dir))

	_, err := GetSplitterConfig()
	assert.Error(t, err)
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{}`)
	require.NoError(t, Load(dir))

	cfg := GetOTelConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "truesize", cfg.ServiceName)
	assert.Equal(t, time.Minute, cfg.ExportInterval)
	assert.Equal(t, 0, GetInt("ingest.workers"))
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `{"otel": {"enabled": true, "serviceName": "truesize-ci", "exportInterval": "10s"}}`)
	require.NoError(t, Load(dir))

	cfg := GetOTelConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "truesize-ci", cfg.ServiceName)
	assert.Equal(t, 10*time.Second, cfg.ExportInterval)
}
