package tz

import (
	"context"
	"time"
)

type zoneKey struct{}

// WithZone returns a context carrying z. It does not touch process state, so
// concurrent tasks can each carry their own zone.
func WithZone(ctx context.Context, z Zone) context.Context {
	return context.WithValue(ctx, zoneKey{}, z)
}

// FromContext returns the zone carried by ctx, falling back to Active when ctx
// carries none or carries Inherit.
func FromContext(ctx context.Context) Zone {
	if ctx != nil {
		if z, ok := ctx.Value(zoneKey{}).(Zone); ok && z.IsSet() {
			return z
		}
	}
	return Active()
}

// Location returns the location for the zone carried by ctx. Without one it
// returns the location SetActive last loaded. Unknown names resolve to UTC.
func Location(ctx context.Context) *time.Location {
	if ctx != nil {
		if z, ok := ctx.Value(zoneKey{}).(Zone); ok && z.IsSet() {
			loc, _ := resolve(z)
			return loc
		}
	}
	return activeLocation()
}

// Now returns the current time in the zone carried by ctx.
func Now(ctx context.Context) time.Time {
	return time.Now().In(Location(ctx))
}

// In returns t in the zone carried by ctx.
func In(ctx context.Context, t time.Time) time.Time {
	return t.In(Location(ctx))
}
