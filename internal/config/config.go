// internal/config/config.go
package config

type Config struct {
	Device      DeviceConfig      `yaml:"device"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Measurement MeasurementConfig `yaml:"measurement"`
	Log         LogConfig         `yaml:"log"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	// IP of the instrument. It changes at device reboot.
	IP        string `yaml:"ip"`
	Version   string `yaml:"version"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- SCHEDULE ----

type ScheduleConfig struct {
	Interval       string `yaml:"interval"` // "HH:MM"
	AlignFullHours bool   `yaml:"align_full_hours"`
}

// ---- MEASUREMENT ----

type MeasurementConfig struct {
	Basename     string `yaml:"basename"`
	ChannelsFile string `yaml:"channels_file"`
	ParamsFile   string `yaml:"params_file"` // optional JSON overrides
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}
