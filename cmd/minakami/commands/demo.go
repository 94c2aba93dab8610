// ABOUTME: Demo command seeds fake data for development
// ABOUTME: Fills one or more days with plausible tracking records
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minakami/minakami/internal/collectors"
)

var demoDays int

// NewDemoCmd creates the demo command and its subcommands
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Demo data helpers",
	}

	seed := &cobra.Command{
		Use:   "seed [date]",
		Short: "Seed demo data",
		Long: `Fill a day (default: today) with demo activities, places, calls,
app usage, and a note. With --days, seeds that many days ending at the
given date.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDemoSeed,
	}
	seed.Flags().IntVar(&demoDays, "days", 1, "Number of days to seed, ending at the given date")

	cmd.AddCommand(seed)
	return cmd
}

func runDemoSeed(cmd *cobra.Command, args []string) error {
	if demoDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", demoDays)
	}
	date, err := dateArg(args)
	if err != nil {
		return err
	}
	end, _ := time.ParseInLocation("2006-01-02", date, time.Local)

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	seeder := collectors.NewDemoSeeder(tracker)
	for i := demoDays - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format("2006-01-02")
		if err := seeder.SeedDay(day); err != nil {
			return fmt.Errorf("failed to seed %s: %w", day, err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d day(s) of demo data ending %s\n", demoDays, date)
	}
	return nil
}
