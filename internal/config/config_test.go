// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kpress-lab/collector/internal/sources"
	"github.com/stretchr/testify/require"
)

func writeOverrideFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collector.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
	require.Equal(t, DefaultDownloadDir, cfg.DownloadDir)
	require.True(t, cfg.Headless)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("COLLECTOR_OUTPUT_DIR", "/tmp/out")
	t.Setenv("COLLECTOR_CHROME_PATH", "/opt/chrome")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/out", cfg.OutputDir)
	require.Equal(t, "/opt/chrome", cfg.ChromePath)
}

func TestLoad_OverrideFile(t *testing.T) {
	path := writeOverrideFile(t, `
output_dir: ./archive
sources:
  newstof:
    max_per_category: 5
    delay_min: 500ms
    delay_max: 1500ms
  kbs:
    disabled: true
`)
	t.Setenv("COLLECTOR_CONFIG", path)

	cfg, err := Load(nil)
	require.NoError(t, err)

	require.Equal(t, "./archive", cfg.OutputDir)

	tuning := cfg.SourceOverride("newstof")
	require.NotNil(t, tuning)
	require.Equal(t, 5, *tuning.MaxPerCategory)
	require.Equal(t, 500*time.Millisecond, time.Duration(*tuning.DelayMin))

	require.True(t, cfg.SourceOverride("kbs").Disabled)
	require.Nil(t, cfg.SourceOverride("unknown"))
}

func TestLoad_RejectsInvertedDelays(t *testing.T) {
	path := writeOverrideFile(t, `
sources:
  newstof:
    delay_min: 3s
    delay_max: 1s
`)
	t.Setenv("COLLECTOR_CONFIG", path)

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	path := writeOverrideFile(t, `
sources:
  newstof:
    delay_min: fast
`)
	t.Setenv("COLLECTOR_CONFIG", path)

	_, err := Load(nil)
	require.Error(t, err)
}

func TestSourceTuning_Apply(t *testing.T) {
	limit := 7
	dmin := Duration(300 * time.Millisecond)
	dmax := Duration(900 * time.Millisecond)

	tuning := &SourceTuning{MaxPerCategory: &limit, DelayMin: &dmin, DelayMax: &dmax}

	src := &sources.Source{
		MaxPerCategory: 20,
		DelayMin:       time.Second,
		DelayMax:       3 * time.Second,
		CategoryDelay:  2 * time.Second,
	}
	tuning.Apply(src)

	require.Equal(t, 7, src.MaxPerCategory)
	require.Equal(t, 300*time.Millisecond, src.DelayMin)
	require.Equal(t, 900*time.Millisecond, src.DelayMax)
	require.Equal(t, 2*time.Second, src.CategoryDelay, "nil fields leave the registered value")

	// A nil tuning is a no-op
	var none *SourceTuning
	none.Apply(src)
	require.Equal(t, 7, src.MaxPerCategory)
}
