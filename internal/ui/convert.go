package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/berlinclock/internal/clock"
	"github.com/javiermolinar/berlinclock/internal/config"
	"github.com/javiermolinar/berlinclock/internal/history"
)

// displayOpts holds the flags shared by commands that print a clock.
type displayOpts struct {
	format    string
	noColor   bool
	copy      bool
	noHistory bool
}

func (o *displayOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format: text, color or json (defaults to config)")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the plain text clock to the clipboard")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "Do not record this conversion")
}

func (a *App) convertCmd() *cobra.Command {
	opts := &displayOpts{}

	cmd := &cobra.Command{
		Use:   "convert <hh:mm:ss>",
		Short: "Convert a time to the Berlin Clock",
		Long: `Convert a 24-hour time to the Berlin Clock lamps.

The time must be in hh:mm:ss format with two digits per field.
Hours go from 00 to 24 (24 only as 24:00:00), minutes and seconds
from 00 to 59.`,
		Example: `  berlinclock convert 13:17:01
  berlinclock convert 00:00:00 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0], opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func (a *App) nowCmd() *cobra.Command {
	opts := &displayOpts{}

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current local time as a Berlin Clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := a.now()
			return a.show(cmd, clock.FromTime(at), at, history.SourceNow, opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func (a *App) runConvert(cmd *cobra.Command, input string, opts *displayOpts) error {
	t, err := clock.Parse(input)
	if err != nil {
		a.log.Debug().Str("input", input).Err(err).Msg("rejected input")
		return err
	}
	return a.show(cmd, t, a.now(), history.SourceConvert, opts)
}

// show prints the clock for t and handles clipboard and history side effects.
// at is the moment of the conversion and becomes the history timestamp.
func (a *App) show(cmd *cobra.Command, t clock.Time, at time.Time, source history.Source, opts *displayOpts) error {
	format := opts.format
	if format == "" {
		format = a.config.Output.Format
	}
	if !config.IsValidFormat(format) {
		return fmt.Errorf("unknown format %q (want text, color or json)", format)
	}

	d := clock.Encode(t)
	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		if err := writeJSON(out, t, d); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case config.FormatColor:
		setColor(a.useColor(out, opts.noColor))
		fmt.Fprintln(out, RenderColor(d))
	default:
		fmt.Fprintln(out, d.String())
	}

	a.log.Debug().
		Str("clock", t.String()).
		Str("source", string(source)).
		Str("format", format).
		Msg("converted")

	if opts.copy {
		if err := a.copyText(d.String()); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
	}

	if a.config.History.Enabled && !opts.noHistory {
		a.record(cmd.Context(), t, at, source)
	}

	return nil
}

// record stores a conversion. Failures are logged and never fail the command.
func (a *App) record(ctx context.Context, t clock.Time, at time.Time, source history.Source) {
	if ctx == nil {
		ctx = context.Background()
	}

	entry, err := history.NewEntry(t, source, at)
	if err != nil {
		a.log.Warn().Err(err).Msg("building history entry")
		return
	}

	repo, err := a.historyRepo()
	if err != nil {
		a.log.Warn().Err(err).Msg("opening history")
		return
	}

	if err := repo.Record(ctx, entry); err != nil {
		a.log.Warn().Err(err).Msg("recording conversion")
		return
	}
	a.log.Debug().Int64("id", entry.ID).Msg("recorded conversion")
}

// jsonDisplay is the JSON output of a conversion.
type jsonDisplay struct {
	Time string `json:"time"`
	clock.Display
}

func writeJSON(w io.Writer, t clock.Time, d clock.Display) error {
	return json.NewEncoder(w).Encode(jsonDisplay{Time: t.String(), Display: d})
}
