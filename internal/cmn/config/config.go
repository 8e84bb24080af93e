package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/dagucloud/timescope/internal/cmn/tz"
)

// Output formats accepted by the `now` command.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var (
	validOutputs    = []string{OutputTable, OutputJSON, OutputYAML}
	validLogFormats = []string{"", "text", "json"}
)

// Config holds the overall configuration for the application.
type Config struct {
	Core     Core
	Display  Display
	Paths    Paths
	Warnings []string
}

// Core holds settings shared by every command.
type Core struct {
	Debug         bool
	LogFormat     string  // "json" or "text"
	TZ            tz.Zone // tz.Inherit keeps the system zone
	TzOffsetInSec int
	Location      *time.Location
}

// Display holds rendering settings.
type Display struct {
	Zones  []string
	Output string // "table", "json" or "yaml"
}

// Paths records where configuration was looked up.
type Paths struct {
	ConfigDir      string
	ConfigFileUsed string
}

// Validate checks the loaded configuration for unsupported values.
func (c *Config) Validate() error {
	if !slices.Contains(validLogFormats, c.Core.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.Core.LogFormat)
	}
	if !slices.Contains(validOutputs, c.Display.Output) {
		return fmt.Errorf("invalid output %q: must be one of %v", c.Display.Output, validOutputs)
	}
	for _, name := range c.Display.Zones {
		if _, err := tz.LoadLocation(name); err != nil {
			return fmt.Errorf("invalid entry in zones: %w", err)
		}
	}
	return nil
}
