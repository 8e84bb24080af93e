package tz

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/dagucloud/timescope/internal/cmn/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetActive puts the process-wide zone back to Inherit after the test.
func resetActive(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetActive(context.Background(), Inherit) })
}

func assertInheritedEnv(t *testing.T) {
	t.Helper()
	got, ok := os.LookupEnv("TZ")
	assert.Equal(t, hadTZ, ok)
	assert.Equal(t, startupTZ, got)
}

func TestZone(t *testing.T) {
	t.Run("ZeroIsInherit", func(t *testing.T) {
		var z Zone
		assert.Equal(t, Inherit, z)
		assert.False(t, z.IsSet())
		assert.Equal(t, "(inherit)", z.String())
	})

	t.Run("Named", func(t *testing.T) {
		z := Named("America/New_York")
		name, ok := z.Name()
		assert.True(t, ok)
		assert.Equal(t, "America/New_York", name)
		assert.Equal(t, "America/New_York", z.String())
	})

	t.Run("Parse", func(t *testing.T) {
		assert.Equal(t, Inherit, Parse(""))
		assert.Equal(t, Named("UTC"), Parse("UTC"))
	})
}

func TestLoadLocation(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		loc, err := LoadLocation("Europe/Berlin")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", loc.String())

		again, err := LoadLocation("Europe/Berlin")
		require.NoError(t, err)
		assert.Same(t, loc, again)
	})

	t.Run("Local", func(t *testing.T) {
		loc, err := LoadLocation("Local")
		require.NoError(t, err)
		assert.Same(t, startupLocal, loc)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := LoadLocation("Not/AZone")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownZone))
		assert.Contains(t, err.Error(), "Not/AZone")
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		resetActive(t)

		SetActive(ctx, Named("Asia/Tokyo"))

		assert.Equal(t, Named("Asia/Tokyo"), Active())
		assert.Equal(t, "Asia/Tokyo", os.Getenv("TZ"))
		assert.Equal(t, "Asia/Tokyo", time.Local.String())
		assert.Equal(t, "Asia/Tokyo", Location(ctx).String())
	})

	t.Run("InheritRestoresStartup", func(t *testing.T) {
		resetActive(t)

		SetActive(ctx, Named("Asia/Tokyo"))
		SetActive(ctx, Inherit)

		assert.Equal(t, Inherit, Active())
		assert.Same(t, startupLocal, time.Local)
		assertInheritedEnv(t)
	})

	t.Run("Idempotent", func(t *testing.T) {
		resetActive(t)

		SetActive(ctx, Named("Europe/Paris"))
		zone, env, local := Active(), os.Getenv("TZ"), time.Local

		SetActive(ctx, Named("Europe/Paris"))
		assert.Equal(t, zone, Active())
		assert.Equal(t, env, os.Getenv("TZ"))
		assert.Same(t, local, time.Local)
	})

	t.Run("UnknownFallsBackToUTC", func(t *testing.T) {
		resetActive(t)

		var stderr, stdout bytes.Buffer
		ctx := logger.WithLogger(ctx, logger.NewLogger(logger.WithConsole(&stderr, &stdout)))

		SetActive(ctx, Named("Not/AZone"))

		assert.Equal(t, Named("Not/AZone"), Active())
		assert.Equal(t, "Not/AZone", os.Getenv("TZ"))
		assert.Same(t, time.UTC, time.Local)
		assert.Contains(t, stderr.String(), "Unknown timezone")
	})

	t.Run("LogsInheritLabel", func(t *testing.T) {
		resetActive(t)

		var stderr, stdout bytes.Buffer
		ctx := logger.WithLogger(ctx, logger.NewLogger(logger.WithDebug(), logger.WithConsole(&stderr, &stdout)))

		SetActive(ctx, Named("Asia/Tokyo"))
		SetActive(ctx, Inherit)

		out := stderr.String()
		assert.Contains(t, out, `zone=(inherit)`)
		assert.Contains(t, out, `prev-zone=Asia/Tokyo`)
	})
}

func TestWith(t *testing.T) {
	ctx := context.Background()

	t.Run("InheritLeavesStateAlone", func(t *testing.T) {
		resetActive(t)
		SetActive(ctx, Named("Europe/London"))

		got, err := WithValue(ctx, Inherit, func(ctx context.Context) (string, error) {
			assert.Equal(t, Named("Europe/London"), Active())
			return "body result", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "body result", got)
		assert.Equal(t, Named("Europe/London"), Active())
		assert.Equal(t, "Europe/London", os.Getenv("TZ"))
	})

	t.Run("PresentRestores", func(t *testing.T) {
		resetActive(t)

		got, err := WithValue(ctx, Named("America/New_York"), func(ctx context.Context) (int, error) {
			assert.Equal(t, Named("America/New_York"), Active())
			assert.Equal(t, "America/New_York", os.Getenv("TZ"))
			assert.Equal(t, "America/New_York", time.Local.String())
			assert.Equal(t, Named("America/New_York"), FromContext(ctx))
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, Inherit, Active())
		assert.Same(t, startupLocal, time.Local)
		assertInheritedEnv(t)
	})

	t.Run("Nested", func(t *testing.T) {
		resetActive(t)

		err := With(ctx, Named("Europe/Berlin"), func(ctx context.Context) error {
			err := With(ctx, Named("Asia/Kolkata"), func(ctx context.Context) error {
				assert.Equal(t, Named("Asia/Kolkata"), Active())
				assert.Equal(t, "Asia/Kolkata", Now(ctx).Location().String())
				return nil
			})
			assert.Equal(t, Named("Europe/Berlin"), Active())
			assert.Equal(t, "Europe/Berlin", os.Getenv("TZ"))
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, Inherit, Active())
	})

	t.Run("RestoresOnError", func(t *testing.T) {
		resetActive(t)
		errBody := errors.New("body failed")

		err := With(ctx, Named("Australia/Sydney"), func(context.Context) error {
			return errBody
		})

		assert.ErrorIs(t, err, errBody)
		assert.Equal(t, Inherit, Active())
		assertInheritedEnv(t)
	})

	t.Run("RestoresOnPanic", func(t *testing.T) {
		resetActive(t)
		SetActive(ctx, Named("UTC"))

		assert.PanicsWithValue(t, "boom", func() {
			_ = With(ctx, Named("Pacific/Auckland"), func(context.Context) error {
				panic("boom")
			})
		})

		assert.Equal(t, Named("UTC"), Active())
		assert.Equal(t, "UTC", os.Getenv("TZ"))
		assert.Equal(t, "UTC", time.Local.String())
	})
}

func TestContextZone(t *testing.T) {
	resetActive(t)
	ctx := context.Background()

	t.Run("FallsBackToActive", func(t *testing.T) {
		SetActive(ctx, Named("Europe/Madrid"))
		assert.Equal(t, Named("Europe/Madrid"), FromContext(ctx))
		assert.Equal(t, Named("Europe/Madrid"), FromContext(WithZone(ctx, Inherit)))
		assert.Equal(t, "Europe/Madrid", Location(ctx).String())
	})

	t.Run("DoesNotTouchProcess", func(t *testing.T) {
		SetActive(ctx, Named("Europe/Madrid"))
		zctx := WithZone(ctx, Named("Asia/Tokyo"))

		assert.Equal(t, Named("Asia/Tokyo"), FromContext(zctx))
		assert.Equal(t, "Asia/Tokyo", Now(zctx).Location().String())
		assert.Equal(t, Named("Europe/Madrid"), Active())
		assert.Equal(t, "Europe/Madrid", os.Getenv("TZ"))
	})

	t.Run("In", func(t *testing.T) {
		instant := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		got := In(WithZone(ctx, Named("Asia/Tokyo")), instant)
		assert.Equal(t, 9, got.Hour())
		assert.True(t, got.Equal(instant))
	})

	t.Run("UnknownIsUTC", func(t *testing.T) {
		assert.Same(t, time.UTC, Location(WithZone(ctx, Named("Not/AZone"))))
	})
}

const startupChildEnv = "TIMESCOPE_TZ_STARTUP_CHILD"

// TestStartupLocalZone runs in a child process so the local zone has not been
// loaded by any other test before the scope below.
func TestStartupLocalZone(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("time.Local ignores TZ on windows")
	}

	if os.Getenv(startupChildEnv) == "1" {
		ctx := context.Background()
		instant := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		err := With(ctx, Named("Asia/Tokyo"), func(context.Context) error {
			loc, err := LoadLocation("Local")
			if err != nil {
				return err
			}
			_, offset := instant.In(loc).Zone()
			assert.Equal(t, 0, offset)
			return nil
		})
		require.NoError(t, err)

		_, offset := instant.In(time.Local).Zone()
		assert.Equal(t, 0, offset)
		assert.Equal(t, "UTC", os.Getenv("TZ"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestStartupLocalZone$", "-test.count=1")
	cmd.Env = append(os.Environ(), "TZ=UTC", startupChildEnv+"=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}
