package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/cost-guard/pkg/services/analysis"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Config struct {
	Server           Server            `mapstructure:"server"`
	DBPath           string            `mapstructure:"db_path"`
	MonthlyBudgetUSD float64           `mapstructure:"monthly_budget_usd"`
	Analysis         analysis.Settings `mapstructure:"analysis"`
}

// Load reads the config file at path, falling back to defaults for anything
// unset. An empty path skips file loading entirely and returns the defaults,
// still overridable through COSTGUARD_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COSTGUARD")
	v.AutomaticEnv()

	setDefaults(v)

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
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db_path", "costguard.db")
	v.SetDefault("monthly_budget_usd", 50000.0)

	defaults := analysis.DefaultSettings()
	v.SetDefault("analysis.utilization_window_days", defaults.UtilizationWindowDays)
	v.SetDefault("analysis.cost_lookback_days", defaults.CostLookbackDays)
	v.SetDefault("analysis.min_samples", defaults.MinSamples)
	v.SetDefault("analysis.low_confidence_samples", defaults.LowConfidenceSamples)
	v.SetDefault("analysis.full_confidence_samples", defaults.FullConfidenceSamples)
	v.SetDefault("analysis.p50_variance_threshold", defaults.P50VarianceThreshold)
	v.SetDefault("analysis.cpu_median_p50_threshold", defaults.CPUMedianP50Threshold)
	v.SetDefault("analysis.cpu_median_p95_threshold", defaults.CPUMedianP95Threshold)
	v.SetDefault("analysis.high_severity_savings_usd", defaults.HighSeveritySavingsUSD)
	v.SetDefault("analysis.savings_factor_xlarge", defaults.SavingsFactorXLarge)
	v.SetDefault("analysis.savings_factor_large", defaults.SavingsFactorLarge)
	v.SetDefault("analysis.savings_factor_default", defaults.SavingsFactorDefault)
	v.SetDefault("analysis.volume_price_per_gb_month", defaults.VolumePricePerGBMonth)
	v.SetDefault("analysis.assumed_volume_size_gb", defaults.AssumedVolumeSizeGB)
	v.SetDefault("analysis.assumed_unattached_days", defaults.AssumedUnattachedDays)
	v.SetDefault("analysis.orphan_medium_severity_usd", defaults.OrphanMediumSeverityUSD)
	v.SetDefault("analysis.ip_hourly_rate_usd", defaults.IPHourlyRateUSD)
	v.SetDefault("analysis.lb_request_rate_threshold", defaults.LBRequestRateThreshold)
	v.SetDefault("analysis.lb_high_confidence_max_rate", defaults.LBHighConfidenceMaxRate)
	v.SetDefault("analysis.lb_base_monthly_usd", defaults.LBBaseMonthlyUSD)
	v.SetDefault("analysis.lb_capacity_monthly_usd", defaults.LBCapacityMonthlyUSD)
	v.SetDefault("analysis.anomaly_lookback_days", defaults.AnomalyLookbackDays)
	v.SetDefault("analysis.anomaly_min_days", defaults.AnomalyMinDays)
	v.SetDefault("analysis.anomaly_recent_days", defaults.AnomalyRecentDays)
	v.SetDefault("analysis.anomaly_z_threshold", defaults.AnomalyZThreshold)
	v.SetDefault("analysis.anomaly_high_confidence_z", defaults.AnomalyHighConfidenceZ)
	v.SetDefault("analysis.anomaly_min_delta_usd", defaults.AnomalyMinDeltaUSD)
	v.SetDefault("analysis.anomaly_critical_delta_usd", defaults.AnomalyCriticalDeltaUSD)
}
