// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Config loading, tracker setup, and display formatting
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/minakami/minakami/internal/config"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// loadConfig loads .env and the layered configuration. The --db flag
// wins over everything else.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = sqlite.DefaultDBPath()
	}
	return cfg, nil
}

// openTracker loads config and returns an initialized tracker. Callers
// must Close it.
func openTracker() (*sqlite.Tracker, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	tracker := sqlite.NewTrackerWithPath(cfg.DBPath)
	if err := tracker.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return tracker, cfg, nil
}

// dateArg returns args[0] as a validated YYYY-MM-DD day, defaulting to
// today when absent.
func dateArg(args []string) (string, error) {
	if len(args) == 0 {
		return time.Now().Local().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", args[0]); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", args[0])
	}
	return args[0], nil
}

// formatDuration renders seconds as a compact h/m string.
func formatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
