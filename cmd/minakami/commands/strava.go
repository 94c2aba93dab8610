// ABOUTME: Strava command for importing activities
// ABOUTME: sync fetches remote activities and stores the ones not yet present
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minakami/minakami/internal/strava"
)

var stravaAfter string

// NewStravaCmd creates the strava command and its subcommands
func NewStravaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strava",
		Short: "Strava integration",
	}

	sync := &cobra.Command{
		Use:   "sync",
		Short: "Import Strava activities",
		Long: `Fetch activities from Strava and store the ones not yet imported.
Activities already present (matched on their Strava ID) are skipped, so
running sync repeatedly is safe.

Requires STRAVA_CLIENT_ID, STRAVA_CLIENT_SECRET, and
STRAVA_REFRESH_TOKEN (flags, env, or .env file).`,
		RunE: runStravaSync,
	}
	sync.Flags().StringVar(&stravaAfter, "after", "", "Only fetch activities after this day, YYYY-MM-DD (default: last 30 days)")

	cmd.AddCommand(sync)
	return cmd
}

func runStravaSync(cmd *cobra.Command, args []string) error {
	after := time.Now().AddDate(0, 0, -30)
	if stravaAfter != "" {
		t, err := time.ParseInLocation("2006-01-02", stravaAfter, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --after %q (want YYYY-MM-DD)", stravaAfter)
		}
		after = t
	}

	tracker, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	client, err := strava.NewClient(cfg)
	if err != nil {
		return err
	}

	result, err := strava.NewSyncer(client, tracker).Sync(cmd.Context(), after)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Strava sync: %d fetched, %d imported, %d already present\n",
			result.Fetched, result.Imported, result.Skipped)
	}
	return nil
}
