// ABOUTME: Export command writes tracked data to JSON or YAML files
// ABOUTME: Date-range filtered dump of all seven tables for backup
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	exportFrom   string
	exportTo     string
	exportFormat string
	exportOut    string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tracked data to a file",
		Long: `Export all tracked data in a date range to a JSON or YAML file.
Without --from/--to the last 30 days are exported.`,
		Example: `  minakami export --out backup.json
  minakami export --from 2024-01-01 --to 2024-12-31 --format yaml --out 2024.yaml`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportFrom, "from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&exportTo, "to", "", "Range end, YYYY-MM-DD")
	cmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&exportOut, "out", "", "Output file path (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now().Local()
	from := exportFrom
	if from == "" {
		from = now.AddDate(0, 0, -30).Format("2006-01-02")
	}
	to := exportTo
	if to == "" {
		to = now.Format("2006-01-02")
	}
	for _, d := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", d)
		}
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	switch exportFormat {
	case "json":
		err = tracker.WriteJSON(exportOut, from, to)
	case "yaml":
		err = tracker.WriteYAML(exportOut, from, to)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s through %s to %s\n", from, to, exportOut)
	}
	return nil
}
