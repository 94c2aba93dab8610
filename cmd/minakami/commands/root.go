// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all minakami subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	dbPath  string
)

const banner = `
███╗   ███╗██╗███╗   ██╗ █████╗ ██╗  ██╗ █████╗ ███╗   ███╗██╗
████╗ ████║██║████╗  ██║██╔══██╗██║ ██╔╝██╔══██╗████╗ ████║██║
██╔████╔██║██║██╔██╗ ██║███████║█████╔╝ ███████║██╔████╔██║██║
██║╚██╔╝██║██║██║╚██╗██║██╔══██║██╔═██╗ ██╔══██║██║╚██╔╝██║██║
██║ ╚═╝ ██║██║██║ ╚═╝██║██║  ██║██║  ██╗██║  ██║██║ ╚═╝ ██║██║
╚═╝     ╚═╝╚═╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝`

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minakami",
		Short: "Personal daily tracker with AI narratives",
		Long: banner + `

Minakami tracks your days: activities, places, calls, screen time, and
notes, all in one local SQLite file. It can sync workouts from Strava,
write AI narrative summaries of each day, and serve the whole dataset
to AI assistants over MCP.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default: XDG data dir)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewInitCmd(),
		NewLogCmd(),
		NewStatsCmd(),
		NewNarrativeCmd(),
		NewStravaCmd(),
		NewDemoCmd(),
		NewExportCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
