package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/berlinclock/internal/dateutil"
	"github.com/javiermolinar/berlinclock/internal/history"
)

func (a *App) historyCmd() *cobra.Command {
	var (
		date     string
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Long: `List the most recent conversions, newest first.

Use --date to show a single day. It accepts YYYY-MM-DD, "today",
"yesterday" or a weekday name for its most recent occurrence.`,
		Example: `  berlinclock history
  berlinclock history --date=yesterday --limit=5
  berlinclock history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()

			repo, err := a.historyRepo()
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}

			if clearAll {
				n, err := repo.Clear(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d conversions.\n", n)
				return nil
			}

			filter := history.Filter{Limit: a.config.History.Limit}
			if cmd.Flags().Changed("limit") {
				filter.Limit = limit
			}
			if date != "" {
				day, err := dateutil.ParsePastDay(date, a.now())
				if err != nil {
					return err
				}
				filter.Day = &day
			}

			entries, err := repo.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("listing history: %w", err)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No conversions recorded.")
				return nil
			}

			// Print entries grouped by day
			var currentDay string
			for _, e := range entries {
				day := e.CreatedAt.Format("2006-01-02")
				if day != currentDay {
					if currentDay != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "=== %s ===\n", formatHeader(day))
					currentDay = day
				}

				fmt.Fprintf(out, "  #%d  %s  %s  %s\n",
					e.ID,
					e.Time,
					strings.ReplaceAll(e.Display, "\n", " "),
					formatMuted(fmt.Sprintf("%s at %s", e.Source, e.CreatedAt.Format("15:04:05"))),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only show conversions from this day")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of conversions (defaults to config)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all recorded conversions")

	return cmd
}
