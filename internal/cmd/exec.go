package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/dagucloud/timescope/internal/cmn/logger"
	"github.com/dagucloud/timescope/internal/cmn/logger/tag"
	"github.com/dagucloud/timescope/internal/cmn/tz"
	"github.com/spf13/cobra"
)

func Exec() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "exec [flags] -- <command> [args...]",
			Short: "Run a command under a temporary timezone",
			Long: `Run a command with TZ set to the given zone for its whole lifetime.

The zone is activated for this process before the command starts, so the
child inherits it, and the previous zone is restored when the command exits,
whether it succeeds or fails. Without --tz the command runs under the
current zone untouched.

Example:
  timescope exec --tz Asia/Tokyo -- date
  timescope exec -z UTC -- sh -c 'echo $TZ'
`,
			Args: cobra.MinimumNArgs(1),
		}, execFlags, runExec,
	)
}

var execFlags = []commandLineFlag{
	zoneFlag,
}

func runExec(ctx *Context, args []string) error {
	name, err := ctx.StringParam("tz")
	if err != nil {
		return err
	}
	run := func(runCtx context.Context) error {
		return runChild(runCtx, ctx, args)
	}

	// Inherit would reset the configured zone, so only an explicit --tz scopes.
	zone := tz.Parse(name)
	if !zone.IsSet() {
		return run(ctx)
	}
	return tz.With(ctx, zone, run)
}

func runChild(runCtx context.Context, ctx *Context, args []string) error {
	logger.Info(runCtx, "Running command",
		tag.Command(args[0]),
		tag.Args(args[1:]),
		tag.Zone(tz.FromContext(runCtx).String()),
	)

	c := exec.CommandContext(runCtx, args[0], args[1:]...)
	c.Stdin = ctx.Command.InOrStdin()
	c.Stdout = ctx.Out()
	c.Stderr = ctx.Command.ErrOrStderr()

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn(runCtx, "Command exited with error", tag.ExitCode(exitErr.ExitCode()))
			return fmt.Errorf("command %s exited with code %d: %w", args[0], exitErr.ExitCode(), err)
		}
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return nil
}
