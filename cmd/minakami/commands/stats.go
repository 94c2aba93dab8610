// ABOUTME: Stats command renders one day's aggregates in the terminal
// ABOUTME: Color output for activities, calls, screen time, places, and notes
package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minakami/minakami/internal/narrative"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [date]",
		Short: "Show daily statistics",
		Long:  `Show aggregate statistics for one day (default: today).`,
		Example: `  minakami stats
  minakami stats 2024-03-15`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	snap, err := narrative.Collect(tracker, date)
	if err != nil {
		return fmt.Errorf("failed to collect stats: %w", err)
	}

	out := cmd.OutOrStdout()
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite, color.Bold)
	dim := color.New(color.FgHiBlack)

	_, _ = header.Fprintf(out, "Minakami — %s\n\n", date)

	_, _ = label.Fprintln(out, "Activities")
	if snap.ActivityStats.TotalActivities == 0 {
		_, _ = dim.Fprintln(out, "  none recorded")
	} else {
		fmt.Fprintf(out, "  %d activities, %s active", snap.ActivityStats.TotalActivities,
			formatDuration(snap.ActivityStats.TotalDuration))
		if snap.ActivityStats.TotalDistance > 0 {
			fmt.Fprintf(out, ", %.1f km", snap.ActivityStats.TotalDistance/1000)
		}
		if snap.ActivityStats.TotalCalories > 0 {
			fmt.Fprintf(out, ", %.0f kcal", snap.ActivityStats.TotalCalories)
		}
		fmt.Fprintln(out)
		for _, a := range snap.Activities {
			at := time.UnixMilli(a.StartTime).Local().Format("15:04")
			fmt.Fprintf(out, "  %s  %-12s %s", at, a.Type, formatDuration(a.Duration))
			if a.Details != "" {
				fmt.Fprintf(out, "  %s", truncate(a.Details, 40))
			}
			fmt.Fprintln(out)
		}
	}

	_, _ = label.Fprintln(out, "\nPlaces")
	if len(snap.Locations) == 0 {
		_, _ = dim.Fprintln(out, "  none recorded")
	} else {
		for _, l := range snap.Locations {
			name := l.Name
			if name == "" {
				name = fmt.Sprintf("(%.4f, %.4f)", l.Latitude, l.Longitude)
			}
			fmt.Fprintf(out, "  %s (visited %dx)\n", name, l.VisitCount)
		}
	}

	_, _ = label.Fprintln(out, "\nCalls")
	if snap.CallStats.TotalCalls == 0 {
		_, _ = dim.Fprintln(out, "  none recorded")
	} else {
		fmt.Fprintf(out, "  %d calls (%d in / %d out / %d missed), %s talking\n",
			snap.CallStats.TotalCalls, snap.CallStats.IncomingCalls,
			snap.CallStats.OutgoingCalls, snap.CallStats.MissedCalls,
			formatDuration(snap.CallStats.TotalDuration))
	}

	_, _ = label.Fprintln(out, "\nScreen time")
	if snap.AppStats.SessionCount == 0 {
		_, _ = dim.Fprintln(out, "  none recorded")
	} else {
		fmt.Fprintf(out, "  %s across %d apps\n",
			formatDuration(snap.AppStats.TotalDuration/1000), snap.AppStats.AppCount)
		for _, a := range snap.TopApps {
			fmt.Fprintf(out, "  %-20s %s\n", truncate(a.AppName, 20),
				formatDuration(a.TotalDuration/1000))
		}
	}

	if len(snap.Notes) > 0 {
		_, _ = label.Fprintln(out, "\nNotes")
		for _, n := range snap.Notes {
			fmt.Fprintf(out, "  - %s\n", truncate(n.Content, 70))
		}
	}

	return nil
}
