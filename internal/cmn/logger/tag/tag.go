// Package tag provides standardized tag functions for structured logging.
//
// All tag keys use kebab-case naming convention for consistency.
package tag

import (
	"log/slog"
	"time"
)

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Error creates a tag for error objects.
func Error(err any) slog.Attr {
	return slog.Any("err", err)
}

// Zone creates a tag for timezone identifiers. Callers pass Zone.String(), so
// the inherited zone logs as "(inherit)".
func Zone(name string) slog.Attr {
	return slog.String("zone", name)
}

// PrevZone creates a tag for the zone being restored.
func PrevZone(name string) slog.Attr {
	return slog.String("prev-zone", name)
}

// Offset creates a tag for a UTC offset in seconds.
func Offset(sec int) slog.Attr {
	return slog.Int("offset-sec", sec)
}

// Unit creates a tag for time unit names.
func Unit(unit string) slog.Attr {
	return slog.String("unit", unit)
}

// Count creates a tag for signed unit counts.
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// Time creates a tag for instants.
func Time(key string, t time.Time) slog.Attr {
	return slog.Time(key, t)
}

// Command creates a tag for executed command names.
func Command(cmd string) slog.Attr {
	return slog.String("cmd", cmd)
}

// Args creates a tag for command arguments.
func Args(args []string) slog.Attr {
	return slog.Any("args", args)
}

// ExitCode creates a tag for process exit codes.
func ExitCode(code int) slog.Attr {
	return slog.Int("exit-code", code)
}

// Format creates a tag for output format names.
func Format(f string) slog.Attr {
	return slog.String("format", f)
}
