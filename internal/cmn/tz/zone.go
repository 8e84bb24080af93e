// Package tz manages the active timezone.
//
// The process-wide zone lives in a single cell mirrored into the TZ
// environment variable and time.Local. SetActive replaces it and With runs a
// function under a temporary override, restoring the previous zone on every
// exit path, panics included.
//
// The process-wide cell assumes one logical thread of control: concurrent
// With calls interleave their save/restore steps. Work that runs
// concurrently should carry its zone in a context instead (WithZone,
// Location, Now, In), which never touches process state.
package tz

// Zone is an optional IANA or POSIX timezone identifier such as
// "America/New_York". The zero value is Inherit.
type Zone struct {
	name string
	set  bool
}

// Inherit means "no override": use whatever zone the process started with.
var Inherit = Zone{}

// Named returns a present zone. The name is not validated here; unknown
// names fall back to UTC when activated.
func Named(name string) Zone {
	return Zone{name: name, set: true}
}

// Parse maps "" to Inherit and anything else to Named(s).
func Parse(s string) Zone {
	if s == "" {
		return Inherit
	}
	return Named(s)
}

// Name returns the identifier and whether the zone is present.
func (z Zone) Name() (string, bool) {
	return z.name, z.set
}

// IsSet reports whether z overrides the inherited zone.
func (z Zone) IsSet() bool {
	return z.set
}

// String returns the identifier, or "(inherit)" for Inherit.
func (z Zone) String() string {
	if !z.set {
		return "(inherit)"
	}
	return z.name
}
