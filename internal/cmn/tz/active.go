package tz

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/dagucloud/timescope/internal/cmn/logger"
	"github.com/dagucloud/timescope/internal/cmn/logger/tag"
)

const envTZ = "TZ"

// Captured before anything in this package touches TZ or time.Local.
var (
	startupLocal     = loadedLocal()
	startupTZ, hadTZ = os.LookupEnv(envTZ)
)

// loadedLocal returns time.Local after forcing its lazy load, so the startup
// location is read from the startup TZ and not from whatever TZ holds on
// first use.
func loadedLocal() *time.Location {
	_ = time.Local.String()
	return time.Local
}

var (
	mu        sync.Mutex
	current   = Inherit
	activeLoc = startupLocal
)

// Active returns the process-wide zone most recently passed to SetActive.
func Active() Zone {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// activeLocation returns the location SetActive last loaded.
func activeLocation() *time.Location {
	mu.Lock()
	defer mu.Unlock()
	return activeLoc
}

// SetActive replaces the process-wide zone with z, mirrors it into TZ and
// reloads time.Local.
//
// A present zone is written to TZ verbatim. Inherit puts TZ back the way the
// process started: unset if it was unset. An unknown name is not an error:
// it is still recorded and written to TZ, while time.Local falls back to UTC
// and a warning is logged.
func SetActive(ctx context.Context, z Zone) {
	mu.Lock()
	defer mu.Unlock()

	prev := current
	current = z

	if name, ok := z.Name(); ok {
		if err := os.Setenv(envTZ, name); err != nil {
			logger.Warn(ctx, "Failed to set TZ environment variable", tag.Zone(name), tag.Error(err))
		}
	} else if hadTZ {
		_ = os.Setenv(envTZ, startupTZ)
	} else {
		_ = os.Unsetenv(envTZ)
	}

	loc, ok := resolve(z)
	if !ok {
		logger.Warn(ctx, "Unknown timezone, falling back to UTC", tag.Zone(z.String()))
	}
	activeLoc = loc
	time.Local = loc

	logger.Debug(ctx, "Timezone activated", tag.Zone(z.String()), tag.PrevZone(prev.String()))
}

// With runs fn with z as the process-wide zone and restores the previous zone
// when fn returns, fails or panics. Inherit runs fn untouched. The context
// handed to fn also carries z (see WithZone).
//
// Nested calls restore in stack order. Concurrent calls do not: the
// process-wide zone is shared state with no ownership.
func With(ctx context.Context, z Zone, fn func(ctx context.Context) error) error {
	_, err := WithValue(ctx, z, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// WithValue is With for functions that produce a value.
func WithValue[T any](ctx context.Context, z Zone, fn func(ctx context.Context) (T, error)) (T, error) {
	if !z.IsSet() {
		return fn(ctx)
	}

	prev := Active()
	SetActive(ctx, z)
	defer SetActive(ctx, prev)

	return fn(WithZone(ctx, z))
}
