package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dagucloud/timescope/internal/cmn/config"
	"github.com/dagucloud/timescope/internal/cmn/logger"
	"github.com/dagucloud/timescope/internal/cmn/logger/tag"
	"github.com/dagucloud/timescope/internal/cmn/tz"
	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func Now() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "now [flags]",
			Short: "Show the current time in one or more timezones",
			Long: `Show the current time in each requested timezone.

Each row is computed with the zone temporarily activated for the whole
process, so it reflects exactly what the time library reports under that
zone. The previous zone is restored after every row.

Zones come from --tz, then the "zones" config key, then the active zone.

Example:
  timescope now --tz UTC --tz Asia/Tokyo
  timescope now -z America/New_York,Europe/London -o json
`,
			Args: cobra.NoArgs,
		}, nowFlags, runNow,
	)
}

var nowFlags = []commandLineFlag{
	zonesFlag,
	outputFlag,
}

// zoneRow is one rendered line of `now`.
type zoneRow struct {
	Zone   string `json:"zone" yaml:"zone"`
	Time   string `json:"time" yaml:"time"`
	Abbrev string `json:"abbrev" yaml:"abbrev"`
	Offset string `json:"offset" yaml:"offset"`
}

var zoneHeader = table.Row{
	"Zone",
	"Time",
	"Abbrev",
	"Offset",
}

func runNow(ctx *Context, _ []string) error {
	names, err := ctx.Command.Flags().GetStringSlice("tz")
	if err != nil {
		return fmt.Errorf("failed to get tz flag: %w", err)
	}

	output, err := ctx.StringParam("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = ctx.Config.Display.Output
	}

	zones := requestedZones(ctx.Config, names)
	instant := nowFunc()

	rows := make([]zoneRow, 0, len(zones))
	for _, z := range zones {
		row, err := tz.WithValue(ctx, z, func(ctx context.Context) (zoneRow, error) {
			return newZoneRow(ctx, z, instant), nil
		})
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	logger.Debug(ctx, "Rendering zones", tag.Format(output), tag.Count(int64(len(rows))))
	return renderRows(ctx.Out(), output, rows)
}

// requestedZones picks flag values, then configured zones, then the active zone.
func requestedZones(cfg *config.Config, names []string) []tz.Zone {
	names = lo.Uniq(lo.Compact(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})))
	if len(names) == 0 {
		names = cfg.Display.Zones
	}
	if len(names) == 0 {
		return []tz.Zone{tz.Active()}
	}
	return lo.Map(names, func(n string, _ int) tz.Zone {
		return tz.Named(n)
	})
}

func newZoneRow(ctx context.Context, z tz.Zone, instant time.Time) zoneRow {
	t := tz.In(ctx, instant)
	abbrev, _ := t.Zone()
	label := z.String()
	if !z.IsSet() {
		label = "Local"
	}
	return zoneRow{
		Zone:   label,
		Time:   t.Format(time.DateTime),
		Abbrev: abbrev,
		Offset: t.Format("-07:00"),
	}
}

func renderRows(w io.Writer, output string, rows []zoneRow) error {
	switch output {
	case config.OutputJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case config.OutputYAML:
		data, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err

	case config.OutputTable, "":
		zoneTable := table.NewWriter()
		zoneTable.AppendHeader(zoneHeader)
		for _, r := range rows {
			zoneTable.AppendRow(table.Row{r.Zone, r.Time, r.Abbrev, r.Offset})
		}
		_, err := fmt.Fprintln(w, zoneTable.Render())
		return err

	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
