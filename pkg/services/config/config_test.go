package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "costguard.db", cfg.DBPath)
		assert.Equal(t, 50000.0, cfg.MonthlyBudgetUSD)
		assert.Equal(t, 48, cfg.Analysis.MinSamples)
		assert.Equal(t, 15.0, cfg.Analysis.CPUMedianP50Threshold)
	})

	t.Run("file values override defaults, rest stay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
server:
  port: 9000
monthly_budget_usd: 12000
analysis:
  cpu_median_p50_threshold: 10
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, 12000.0, cfg.MonthlyBudgetUSD)
		assert.Equal(t, 10.0, cfg.Analysis.CPUMedianP50Threshold)
		// untouched values keep their defaults
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 30.0, cfg.Analysis.CPUMedianP95Threshold)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yaml")
		assert.Error(t, err)
	})
}
