package config

// Definition holds the raw configuration as read from the config file and
// environment. Each field maps to a configuration key.
type Definition struct {
	// Debug enables debug logging with source locations.
	Debug bool `mapstructure:"debug"`

	// LogFormat defines the output format for log messages.
	// Available options: "json", "text"
	LogFormat string `mapstructure:"logFormat"`

	// TZ is the timezone applied to the whole process at start-up
	// (for example, "UTC" or "America/New_York"). Empty inherits the system zone.
	TZ string `mapstructure:"tz"`

	// Zones lists the zones shown by `now` when no --tz flag is given.
	// Accepts a YAML list or a comma-separated string.
	Zones []string `mapstructure:"zones"`

	// Output selects how `now` renders its rows.
	// Available options: "table", "json", "yaml"
	Output string `mapstructure:"output"`
}
