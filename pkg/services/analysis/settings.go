package analysis

// Settings contains the tunable thresholds for all detectors. The defaults
// are heuristics carried over from manual reviews, not derived from pricing
// data; keep them configurable so they can be revisited against real bills.
type Settings struct {
	// UtilizationWindowDays is the trailing window for hourly samples (default: 7)
	UtilizationWindowDays int `mapstructure:"utilization_window_days"`
	// CostLookbackDays is the trailing window for per-resource spend (default: 30)
	CostLookbackDays int `mapstructure:"cost_lookback_days"`

	// MinSamples is the minimum hourly sample count before a compute resource is judged (default: 48, ~2 days)
	MinSamples int `mapstructure:"min_samples"`
	// LowConfidenceSamples downgrades confidence to low below this count (default: 72, ~3 days)
	LowConfidenceSamples int `mapstructure:"low_confidence_samples"`
	// FullConfidenceSamples is required for high confidence (default: 120, ~5 days)
	FullConfidenceSamples int `mapstructure:"full_confidence_samples"`
	// P50VarianceThreshold downgrades confidence when p50 variance exceeds it (default: 100)
	P50VarianceThreshold float64 `mapstructure:"p50_variance_threshold"`
	// CPUMedianP50Threshold flags compute whose median p50 CPU is below it (default: 15)
	CPUMedianP50Threshold float64 `mapstructure:"cpu_median_p50_threshold"`
	// CPUMedianP95Threshold must also hold so a single heavy spike exonerates (default: 30)
	CPUMedianP95Threshold float64 `mapstructure:"cpu_median_p95_threshold"`
	// HighSeveritySavingsUSD promotes severity when estimated savings exceed it (default: 200)
	HighSeveritySavingsUSD float64 `mapstructure:"high_severity_savings_usd"`
	// SavingsFactor* are coarse rightsizing estimates keyed on instance-type substrings
	SavingsFactorXLarge  float64 `mapstructure:"savings_factor_xlarge"`
	SavingsFactorLarge   float64 `mapstructure:"savings_factor_large"`
	SavingsFactorDefault float64 `mapstructure:"savings_factor_default"`

	// VolumePricePerGBMonth and AssumedVolumeSizeGB model orphaned volume cost (defaults: 0.10, 100)
	VolumePricePerGBMonth float64 `mapstructure:"volume_price_per_gb_month"`
	AssumedVolumeSizeGB   float64 `mapstructure:"assumed_volume_size_gb"`
	// AssumedUnattachedDays is how long an available volume is presumed orphaned (default: 45)
	AssumedUnattachedDays int `mapstructure:"assumed_unattached_days"`
	// OrphanMediumSeverityUSD promotes volume findings above this monthly cost (default: 20)
	OrphanMediumSeverityUSD float64 `mapstructure:"orphan_medium_severity_usd"`
	// IPHourlyRateUSD prices an unused floating IP (default: 0.005)
	IPHourlyRateUSD float64 `mapstructure:"ip_hourly_rate_usd"`

	// LBRequestRateThreshold flags load balancers whose median p50 req/s is below it (default: 1.0)
	LBRequestRateThreshold float64 `mapstructure:"lb_request_rate_threshold"`
	// LBHighConfidenceMaxRate keeps confidence high when the max observed rate stays below it (default: 2.0)
	LBHighConfidenceMaxRate float64 `mapstructure:"lb_high_confidence_max_rate"`
	// LBBaseMonthlyUSD and LBCapacityMonthlyUSD are the flat idle-LB savings estimate (defaults: 18, 7)
	LBBaseMonthlyUSD     float64 `mapstructure:"lb_base_monthly_usd"`
	LBCapacityMonthlyUSD float64 `mapstructure:"lb_capacity_monthly_usd"`

	// AnomalyLookbackDays is the daily-cost window per product (default: 30)
	AnomalyLookbackDays int `mapstructure:"anomaly_lookback_days"`
	// AnomalyMinDays is the minimum distinct days of data per product (default: 14)
	AnomalyMinDays int `mapstructure:"anomaly_min_days"`
	// AnomalyRecentDays is how many trailing days are scored against the baseline (default: 3)
	AnomalyRecentDays int `mapstructure:"anomaly_recent_days"`
	// AnomalyZThreshold is the robust z-score magnitude that flags a day (default: 2.5)
	AnomalyZThreshold float64 `mapstructure:"anomaly_z_threshold"`
	// AnomalyHighConfidenceZ keeps confidence high at or above this magnitude (default: 3.0)
	AnomalyHighConfidenceZ float64 `mapstructure:"anomaly_high_confidence_z"`
	// AnomalyMinDeltaUSD filters out statistically loud but cheap wobbles (default: 25)
	AnomalyMinDeltaUSD float64 `mapstructure:"anomaly_min_delta_usd"`
	// AnomalyCriticalDeltaUSD promotes severity to critical (default: 200)
	AnomalyCriticalDeltaUSD float64 `mapstructure:"anomaly_critical_delta_usd"`
}

func DefaultSettings() Settings {
	return Settings{
		UtilizationWindowDays:   7,
		CostLookbackDays:        30,
		MinSamples:              48,
		LowConfidenceSamples:    72,
		FullConfidenceSamples:   120,
		P50VarianceThreshold:    100,
		CPUMedianP50Threshold:   15.0,
		CPUMedianP95Threshold:   30.0,
		HighSeveritySavingsUSD:  200,
		SavingsFactorXLarge:     0.4,
		SavingsFactorLarge:      0.3,
		SavingsFactorDefault:    0.25,
		VolumePricePerGBMonth:   0.10,
		AssumedVolumeSizeGB:     100,
		AssumedUnattachedDays:   45,
		OrphanMediumSeverityUSD: 20,
		IPHourlyRateUSD:         0.005,
		LBRequestRateThreshold:  1.0,
		LBHighConfidenceMaxRate: 2.0,
		LBBaseMonthlyUSD:        18.0,
		LBCapacityMonthlyUSD:    7.0,
		AnomalyLookbackDays:     30,
		AnomalyMinDays:          14,
		AnomalyRecentDays:       3,
		AnomalyZThreshold:       2.5,
		AnomalyHighConfidenceZ:  3.0,
		AnomalyMinDeltaUSD:      25,
		AnomalyCriticalDeltaUSD: 200,
	}
}
