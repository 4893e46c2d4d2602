// internal/config/validate.go
package config

import (
	"github.com/pkg/errors"

	"github.com/tamzrod/sip-autorun/internal/device"
	"github.com/tamzrod/sip-autorun/internal/params"
	"github.com/tamzrod/sip-autorun/internal/schedule"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Device.IP == "" {
		return errors.New("config: device.ip is required")
	}
	if cfg.Device.TimeoutMs < 0 {
		return errors.New("config: device.timeout_ms must not be negative")
	}

	if _, err := params.ParseVersion(cfg.Device.Version); err != nil {
		return errors.Wrap(err, "config: device.version")
	}

	if _, err := schedule.ParseInterval(cfg.Schedule.Interval); err != nil {
		return errors.Wrap(err, "config: schedule.interval")
	}

	if cfg.Measurement.Basename == "" {
		return errors.New("config: measurement.basename is required")
	}
	if cfg.Measurement.ChannelsFile == "" {
		return errors.New("config: measurement.channels_file is required")
	}

	return nil
}

// ValidateChannelMap checks the loaded channel map against the fixed
// device topology. Supplied once at startup, immutable afterwards.
func ValidateChannelMap(m ChannelMap) error {
	if len(m) == 0 {
		return errors.New("config: channel map is empty")
	}

	seen := make(map[string]bool)
	for _, pair := range m {
		if seen[pair.Stimulus] {
			return errors.Errorf("config: duplicate stimulus channel %q", pair.Stimulus)
		}
		seen[pair.Stimulus] = true

		if !device.KnownChannel(pair.Stimulus) {
			return errors.Errorf("config: unknown stimulus channel %q, valid channels are %v",
				pair.Stimulus, device.KnownChannels())
		}
		if len(pair.Responses) == 0 {
			return errors.Errorf("config: stimulus channel %q has no response channels", pair.Stimulus)
		}
		for _, r := range pair.Responses {
			if !device.KnownChannel(r) {
				return errors.Errorf("config: unknown response channel %q for stimulus %q, valid channels are %v",
					r, pair.Stimulus, device.KnownChannels())
			}
		}
	}

	return nil
}
