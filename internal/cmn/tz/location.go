package tz

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrUnknownZone is returned by LoadLocation for names the zone database
// does not know.
var ErrUnknownZone = errors.New("unknown timezone")

var locations sync.Map // name -> *time.Location

// LoadLocation returns the location for name, caching successful lookups.
//
// Unlike time.LoadLocation it reports a plain ErrUnknownZone instead of the
// zoneinfo.zip message, and treats "Local" as the zone the process started
// with rather than whatever time.Local currently points at.
func LoadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, "local") {
		return startupLocal, nil
	}
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	locations.Store(name, loc)
	return loc, nil
}

// resolve returns the location z stands for. Inherit resolves to the startup
// zone. ok is false when a present name is unknown; loc is UTC in that case.
func resolve(z Zone) (loc *time.Location, ok bool) {
	name, set := z.Name()
	if !set {
		return startupLocal, true
	}
	loc, err := LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}
