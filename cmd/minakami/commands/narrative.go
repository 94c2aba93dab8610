// ABOUTME: Narrative command for showing and generating daily AI summaries
// ABOUTME: show reads stored rows; generate calls OpenAI and stores the result
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minakami/minakami/internal/narrative"
)

// NewNarrativeCmd creates the narrative command and its subcommands
func NewNarrativeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Daily AI narrative summaries",
	}

	show := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the stored narrative for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNarrativeShow,
	}

	generate := &cobra.Command{
		Use:   "generate [date]",
		Short: "Generate (or regenerate) the narrative for a day",
		Long: `Generate the AI narrative for a day from its tracked data and store
it. Requires OPENAI_API_KEY. Regenerating replaces the stored row.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNarrativeGenerate,
	}

	cmd.AddCommand(show, generate)
	return cmd
}

func runNarrativeShow(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	tracker, _, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	summary, err := tracker.GetNarrativeSummary(date)
	if err != nil {
		return fmt.Errorf("failed to load narrative: %w", err)
	}
	if summary == nil {
		return fmt.Errorf("no narrative stored for %s (try: minakami narrative generate %s)", date, date)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", summary.Date, summary.Summary)
	return nil
}

func runNarrativeGenerate(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	tracker, cfg, err := openTracker()
	if err != nil {
		return err
	}
	defer func() { _ = tracker.Close() }()

	generator, err := narrative.NewGenerator(cfg, tracker)
	if err != nil {
		return err
	}

	text, err := generator.GenerateDaily(cmd.Context(), date)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", date, text)
	}
	return nil
}
