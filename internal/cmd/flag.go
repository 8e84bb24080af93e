package cmd

import (
	"github.com/spf13/cobra"
)

type flagKind int

const (
	stringFlag flagKind = iota
	boolFlag
	stringSliceFlag
)

type commandLineFlag struct {
	name, shorthand, defaultValue, usage string
	kind                                 flagKind
}

var (
	configFlag = commandLineFlag{
		name:      "config",
		shorthand: "c",
		usage:     "config file (default is $XDG_CONFIG_HOME/timescope/config.yaml)",
	}
	quietFlag = commandLineFlag{
		name:      "quiet",
		shorthand: "q",
		usage:     "suppress log output",
		kind:      boolFlag,
	}
	debugFlag = commandLineFlag{
		name:  "debug",
		usage: "enable debug logging",
		kind:  boolFlag,
	}
	zonesFlag = commandLineFlag{
		name:      "tz",
		shorthand: "z",
		usage:     "timezone to show, repeatable or comma-separated (default: configured zones)",
		kind:      stringSliceFlag,
	}
	zoneFlag = commandLineFlag{
		name:      "tz",
		shorthand: "z",
		usage:     "timezone to run under, e.g. America/New_York (default: inherit)",
	}
	outputFlag = commandLineFlag{
		name:      "output",
		shorthand: "o",
		usage:     "output format: table, json or yaml (default: configured output)",
	}
	atFlag = commandLineFlag{
		name:  "at",
		usage: "RFC 3339 instant to describe instead of <count> <unit>",
	}
	inFlag = commandLineFlag{
		name:  "in",
		usage: "signed offset from now to describe, e.g. 36h, -2d, 1w",
	}
	fromFlag = commandLineFlag{
		name:  "from",
		usage: "RFC 3339 reference instant for --at (default: now)",
	}
)

var commonFlags = []commandLineFlag{configFlag, quietFlag, debugFlag}

func initFlags(cmd *cobra.Command, addFlags ...commandLineFlag) {
	for _, flag := range append(addFlags, commonFlags...) {
		switch flag.kind {
		case boolFlag:
			cmd.Flags().BoolP(flag.name, flag.shorthand, flag.defaultValue == "true", flag.usage)
		case stringSliceFlag:
			cmd.Flags().StringSliceP(flag.name, flag.shorthand, nil, flag.usage)
		default:
			cmd.Flags().StringP(flag.name, flag.shorthand, flag.defaultValue, flag.usage)
		}
	}
}
