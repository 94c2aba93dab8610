// ABOUTME: Log command for recording tracked data by hand
// ABOUTME: Subcommands for activities, locations, calls, app usage, and notes
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minakami/minakami/internal/collectors"
	"github.com/minakami/minakami/internal/models"
)

var (
	logMinutes  int
	logAt       string
	logDetails  string
	logDistance float64
	logCalories float64

	logLocName     string
	logLocAccuracy float64

	logCallContact  string
	logCallDuration int

	logUsagePackage  string
	logUsageCategory string
	logUsageMinutes  int

	logNoteDate string
)

// NewLogCmd creates the log command and its subcommands
func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record activities, places, calls, usage, or notes",
	}

	cmd.AddCommand(
		newLogActivityCmd(),
		newLogLocationCmd(),
		newLogCallCmd(),
		newLogUsageCmd(),
		newLogNoteCmd(),
	)

	return cmd
}

// parseAt resolves the --at flag, defaulting to now.
func parseAt() (time.Time, error) {
	if logAt == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(time.RFC3339, logAt, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q (want RFC3339): %w", logAt, err)
	}
	return t, nil
}

func newLogActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity <type>",
		Short: "Log a physical activity",
		Example: `  minakami log activity running --minutes 30 --distance 5000
  minakami log activity yoga --minutes 45 --at 2024-03-15T07:00:00+09:00`,
		Args: cobra.ExactArgs(1),
		RunE: runLogActivity,
	}

	cmd.Flags().IntVar(&logMinutes, "minutes", 0, "Duration in minutes (required)")
	cmd.Flags().StringVar(&logAt, "at", "", "Start time, RFC3339 (default: now)")
	cmd.Flags().StringVar(&logDetails, "details", "", "Free-text details")
	cmd.Flags().Float64Var(&logDistance, "distance", 0, "Distance in meters")
	cmd.Flags().Float64Var(&logCalories, "calories", 0, "Calories burned")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func runLogActivity(cmd *cobra.Command, args []string) error {
	if logMinutes <= 0 {
		return fmt.Errorf("--minutes must be positive, got %d", logMinutes)
	}
	start, err := parseAt()
	if err != nil {
		return err
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	duration := int64(logMinutes) * 60
	id, err := tracker.AddActivity(&models.Activity{
		Type:      args[0],
		StartTime: start.UnixMilli(),
		EndTime:   start.UnixMilli() + duration*1000,
		Duration:  duration,
		Details:   logDetails,
		Distance:  logDistance,
		Calories:  logCalories,
		Source:    models.SourceManual,
	})
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %s #%d (%s)\n", args[0], id, formatDuration(duration))
	}
	return nil
}

func newLogLocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location <lat> <lon>",
		Short: "Log a position sample",
		Long: `Log a position sample. A sample close to a known place bumps its
visit count instead of creating a new row.`,
		Args: cobra.ExactArgs(2),
		RunE: runLogLocation,
	}

	cmd.Flags().StringVar(&logLocName, "name", "", "Name for the place (applied when a new place is created)")
	cmd.Flags().Float64Var(&logLocAccuracy, "accuracy", 0, "Fix accuracy in meters")
	cmd.Flags().StringVar(&logAt, "at", "", "Sample time, RFC3339 (default: now)")

	return cmd
}

func runLogLocation(cmd *cobra.Command, args []string) error {
	var lat, lon float64
	if _, err := fmt.Sscanf(args[0], "%f", &lat); err != nil {
		return fmt.Errorf("invalid latitude %q", args[0])
	}
	if _, err := fmt.Sscanf(args[1], "%f", &lon); err != nil {
		return fmt.Errorf("invalid longitude %q", args[1])
	}
	at, err := parseAt()
	if err != nil {
		return err
	}

	tracker, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	ingester := collectors.NewLocationIngester(tracker, cfg.NearbyRadiusMeters)
	id, merged, err := ingester.Ingest(models.LocationSample{
		Latitude:  lat,
		Longitude: lon,
		Timestamp: at.UnixMilli(),
		Accuracy:  logLocAccuracy,
	})
	if err != nil {
		return fmt.Errorf("failed to log location: %w", err)
	}

	if !merged && logLocName != "" {
		if err := tracker.UpdateLocationName(id, logLocName); err != nil {
			return fmt.Errorf("failed to name location: %w", err)
		}
	}

	if !quiet {
		if merged {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Revisit of place #%d recorded\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ New place #%d recorded\n", id)
		}
	}
	return nil
}

func newLogCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "call <incoming|outgoing|missed> <number>",
		Short:     "Log a call history entry",
		Args:      cobra.ExactArgs(2),
		RunE:      runLogCall,
		ValidArgs: []string{models.CallIncoming, models.CallOutgoing, models.CallMissed},
	}

	cmd.Flags().StringVar(&logCallContact, "contact", "", "Contact name")
	cmd.Flags().IntVar(&logCallDuration, "seconds", 0, "Call duration in seconds")
	cmd.Flags().StringVar(&logAt, "at", "", "Call time, RFC3339 (default: now)")

	return cmd
}

func runLogCall(cmd *cobra.Command, args []string) error {
	at, err := parseAt()
	if err != nil {
		return err
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	n, err := collectors.NewCallIngester(tracker).Ingest([]models.CallLog{{
		PhoneNumber: args[1],
		ContactName: logCallContact,
		CallType:    args[0],
		CallDate:    at.UnixMilli(),
		Duration:    int64(logCallDuration),
	}})
	if err != nil {
		return fmt.Errorf("failed to log call: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %d call entry\n", n)
	}
	return nil
}

func newLogUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage <app-name>",
		Short: "Log an app usage session",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogUsage,
	}

	cmd.Flags().StringVar(&logUsagePackage, "package", "", "Package name (default: app name)")
	cmd.Flags().StringVar(&logUsageCategory, "category", "", "App category")
	cmd.Flags().IntVar(&logUsageMinutes, "minutes", 0, "Session length in minutes (required)")
	cmd.Flags().StringVar(&logAt, "at", "", "Session time, RFC3339 (default: now)")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func runLogUsage(cmd *cobra.Command, args []string) error {
	if logUsageMinutes <= 0 {
		return fmt.Errorf("--minutes must be positive, got %d", logUsageMinutes)
	}
	at, err := parseAt()
	if err != nil {
		return err
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	pkg := logUsagePackage
	if pkg == "" {
		pkg = args[0]
	}

	id, err := tracker.AddAppUsage(&models.AppUsage{
		AppName:     args[0],
		PackageName: pkg,
		Category:    logUsageCategory,
		Duration:    int64(logUsageMinutes) * 60 * 1000,
		Timestamp:   at.UnixMilli(),
		Source:      models.UsageSourceManual,
	})
	if err != nil {
		return fmt.Errorf("failed to log usage: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged usage #%d for %s\n", id, args[0])
	}
	return nil
}

func newLogNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note <text>",
		Short: "Add a journal note for a day",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogNote,
	}

	cmd.Flags().StringVar(&logNoteDate, "date", "", "Day as YYYY-MM-DD (default: today)")

	return cmd
}

func runLogNote(cmd *cobra.Command, args []string) error {
	date := logNoteDate
	if date == "" {
		date = time.Now().Local().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", date)
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	id, err := tracker.AddNote(&models.UserDailyNote{
		Date:      date,
		Content:   args[0],
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Note #%d added for %s\n", id, date)
	}
	return nil
}
