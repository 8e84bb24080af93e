package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dagucloud/timescope/internal/cmn/duration"
	"github.com/dagucloud/timescope/internal/cmn/logger"
	"github.com/dagucloud/timescope/internal/cmn/logger/tag"
	"github.com/dagucloud/timescope/internal/cmn/timeutil"
	"github.com/spf13/cobra"
)

var errRelativeArgs = errors.New("expected <count> <unit>, --at or --in")

func Relative() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "relative [flags] [--] <count> <unit>",
			Short: "Describe a signed count of time units",
			Long: `Print a relative-time phrase for a signed count of a time unit.

Zero is "now", negative counts are in the past ("ago"), positive counts in the
future ("later"). The unit must be singular; an "s" is appended for counts
other than one.

With --at, the instant is described relative to --from (default: now) using
the largest whole unit that fits. --in does the same for now plus a signed
offset that also accepts d (day) and w (week) units.

Example:
  timescope relative 5 day           # 5 days later
  timescope relative -- -3 hour      # 3 hours ago
  timescope relative --at 2026-01-01T00:00:00Z
  timescope relative --in -2d12h     # 2 days ago
`,
			Args: cobra.MaximumNArgs(2),
		}, relativeFlags, runRelative,
	)
}

var relativeFlags = []commandLineFlag{
	atFlag,
	fromFlag,
	inFlag,
}

func runRelative(ctx *Context, args []string) error {
	at, err := ctx.StringParam("at")
	if err != nil {
		return err
	}

	in, err := ctx.StringParam("in")
	if err != nil {
		return err
	}

	if at != "" || in != "" {
		if len(args) != 0 || (at != "" && in != "") {
			return errRelativeArgs
		}
		var phrase string
		if in != "" {
			phrase, err = relativeOffset(ctx, in)
		} else {
			phrase, err = relativeInstant(ctx, at)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.Out(), phrase)
		return err
	}

	if len(args) != 2 {
		return errRelativeArgs
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid count %q: %w", args[0], err)
	}
	unit := strings.TrimSpace(args[1])
	if unit == "" {
		return fmt.Errorf("unit must not be empty")
	}

	logger.Debug(ctx, "Formatting relative count", tag.Count(n), tag.Unit(unit))
	_, err = fmt.Fprintln(ctx.Out(), timeutil.FormatRelative(n, unit))
	return err
}

func relativeInstant(ctx *Context, at string) (string, error) {
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return "", fmt.Errorf("invalid --at: %w", err)
	}

	from, err := ctx.StringParam("from")
	if err != nil {
		return "", err
	}
	ref := nowFunc()
	if from != "" {
		if ref, err = time.Parse(time.RFC3339, from); err != nil {
			return "", fmt.Errorf("invalid --from: %w", err)
		}
	}

	logger.Debug(ctx, "Describing instant", tag.Time("at", t), tag.Time("from", ref))
	return timeutil.Relative(t, ref), nil
}

func relativeOffset(ctx *Context, in string) (string, error) {
	d, err := duration.Parse(in)
	if err != nil {
		return "", fmt.Errorf("invalid --in: %w", err)
	}
	ref := nowFunc()
	logger.Debug(ctx, "Describing offset", tag.String("offset", d.String()))
	return timeutil.Relative(ref.Add(d), ref), nil
}

// nowFunc is replaced in tests.
var nowFunc = time.Now
