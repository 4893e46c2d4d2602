// internal/config/normalize.go
package config

import (
	"fmt"
	"time"
)

const (
	defaultTimeoutMs     = 30000
	defaultLogLevel      = "info"
	defaultMetricsListen = ":9105"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config, now time.Time) {
	if cfg == nil {
		return
	}

	if cfg.Device.TimeoutMs == 0 {
		cfg.Device.TimeoutMs = defaultTimeoutMs
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}

	// Log file defaults to a per-campaign name so unattended runs never
	// clobber each other.
	if cfg.Log.File == "" {
		cfg.Log.File = fmt.Sprintf("%s-%s-autorun.log",
			now.UTC().Format("20060102T150405Z"),
			cfg.Measurement.Basename)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = defaultMetricsListen
	}
}
