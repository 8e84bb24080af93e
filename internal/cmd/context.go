package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dagucloud/timescope/internal/cmn/config"
	"github.com/dagucloud/timescope/internal/cmn/logger"
	"github.com/dagucloud/timescope/internal/cmn/logger/tag"
	"github.com/dagucloud/timescope/internal/cmn/tz"
	"github.com/spf13/cobra"
)

// Context holds the configuration for a command.
type Context struct {
	context.Context

	Command *cobra.Command
	Config  *config.Config
	Quiet   bool
}

// NewContext loads configuration, sets up the logger context, logs any
// warnings and applies the configured timezone process-wide.
func NewContext(cmd *cobra.Command) (*Context, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("failed to get debug flag: %w", err)
	}

	var configLoaderOpts []config.ConfigLoaderOption
	if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
		configLoaderOpts = append(configLoaderOpts, config.WithConfigFile(cfgPath))
	}

	cfg, err := config.Load(configLoaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debug {
		cfg.Core.Debug = true
	}

	var opts []logger.Option
	if cfg.Core.Debug || os.Getenv("DEBUG") != "" {
		opts = append(opts, logger.WithDebug())
	}
	if quiet {
		opts = append(opts, logger.WithQuiet())
	}
	if cfg.Core.LogFormat != "" {
		opts = append(opts, logger.WithFormat(cfg.Core.LogFormat))
	}
	ctx = logger.WithLogger(ctx, logger.NewLogger(opts...))
	ctx = config.WithConfig(ctx, cfg)

	for _, w := range cfg.Warnings {
		logger.Warn(ctx, w)
	}

	if cfg.Core.TZ.IsSet() {
		tz.SetActive(ctx, cfg.Core.TZ)
		logger.Debug(ctx, "Applied configured timezone",
			tag.Zone(cfg.Core.TZ.String()),
			tag.Offset(cfg.Core.TzOffsetInSec),
		)
	}

	return &Context{
		Context: ctx,
		Command: cmd,
		Config:  cfg,
		Quiet:   quiet,
	}, nil
}

// Out is where command results are printed.
func (c *Context) Out() io.Writer {
	return c.Command.OutOrStdout()
}

// StringParam retrieves a string flag, dropping surrounding quotes.
func (c *Context) StringParam(name string) (string, error) {
	val, err := c.Command.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get flag %s: %w", name, err)
	}
	return strings.Trim(val, `"'`), nil
}

// NewCommand wires flags and the shared Context setup into cmd.
func NewCommand(cmd *cobra.Command, flags []commandLineFlag, runFunc func(ctx *Context, args []string) error) *cobra.Command {
	initFlags(cmd, flags...)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, err := NewContext(cmd)
		if err != nil {
			return fmt.Errorf("initialization error: %w", err)
		}
		if err := runFunc(ctx, args); err != nil {
			logger.Error(ctx, "Command failed", tag.Error(err))
			return err
		}
		return nil
	}

	return cmd
}
