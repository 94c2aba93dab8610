// ABOUTME: Day snapshot collection for narrative generation
// ABOUTME: Pulls one day of tracked data from storage and renders it as prompt text
package narrative

import (
	"fmt"
	"strings"
	"time"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// DaySnapshot is everything the generator knows about one day.
type DaySnapshot struct {
	Date          string
	Activities    []models.Activity
	ActivityStats models.ActivityStats
	Locations     []models.Location
	CallStats     models.CallStats
	TopContacts   []models.ContactStat
	AppStats      models.AppUsageStats
	TopApps       []models.AppUsageEntry
	Notes         []models.UserDailyNote
}

// Collect gathers one day of data from the tracker. Empty sections are
// fine; the prompt builder skips them.
func Collect(t *sqlite.Tracker, date string) (*DaySnapshot, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start := day.UnixMilli()
	end := day.Add(24*time.Hour).Add(-time.Millisecond).UnixMilli()

	snap := &DaySnapshot{Date: date}

	if snap.Activities, err = t.GetActivitiesForDate(date); err != nil {
		return nil, err
	}
	if snap.ActivityStats, err = t.GetActivityStats(start, end); err != nil {
		return nil, err
	}
	if snap.Locations, err = t.GetLocationsForDate(date); err != nil {
		return nil, err
	}
	if snap.CallStats, err = t.GetCallStats(start, end); err != nil {
		return nil, err
	}
	if snap.TopContacts, err = t.GetTopContacts(start, end, 3); err != nil {
		return nil, err
	}
	if snap.AppStats, err = t.GetAppUsageStats(date, date); err != nil {
		return nil, err
	}
	if snap.TopApps, err = t.GetTopApps(date, date, 5); err != nil {
		return nil, err
	}
	if snap.Notes, err = t.GetNotesForDate(date); err != nil {
		return nil, err
	}

	return snap, nil
}

// IsEmpty reports whether the day has no data worth narrating.
func (s *DaySnapshot) IsEmpty() bool {
	return len(s.Activities) == 0 && len(s.Locations) == 0 &&
		s.CallStats.TotalCalls == 0 && s.AppStats.SessionCount == 0 &&
		len(s.Notes) == 0
}

// BuildPrompt renders the snapshot as the user prompt for the chat
// completion. Sections with no data are omitted so the model does not
// invent content for them.
func BuildPrompt(s *DaySnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a narrative for %s based on this data:\n", s.Date)

	if len(s.Activities) > 0 {
		b.WriteString("\nActivities:\n")
		for _, a := range s.Activities {
			at := time.UnixMilli(a.StartTime).Local().Format("15:04")
			fmt.Fprintf(&b, "- %s at %s (%d min)", a.Type, at, a.Duration/60)
			if a.Distance > 0 {
				fmt.Fprintf(&b, ", %.1f km", a.Distance/1000)
			}
			if a.Details != "" {
				fmt.Fprintf(&b, ": %s", a.Details)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Locations) > 0 {
		b.WriteString("\nPlaces visited:\n")
		for _, l := range s.Locations {
			name := l.Name
			if name == "" {
				name = fmt.Sprintf("unnamed place (%.4f, %.4f)", l.Latitude, l.Longitude)
			}
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	if s.CallStats.TotalCalls > 0 {
		fmt.Fprintf(&b, "\nCalls: %d total (%d incoming, %d outgoing, %d missed), %d min on the phone\n",
			s.CallStats.TotalCalls, s.CallStats.IncomingCalls, s.CallStats.OutgoingCalls,
			s.CallStats.MissedCalls, s.CallStats.TotalDuration/60)
		for _, c := range s.TopContacts {
			who := c.ContactName
			if who == "" {
				who = c.PhoneNumber
			}
			fmt.Fprintf(&b, "- talked with %s (%d calls)\n", who, c.CallCount)
		}
	}

	if s.AppStats.SessionCount > 0 {
		fmt.Fprintf(&b, "\nScreen time: %d min across %d apps\n",
			s.AppStats.TotalDuration/60000, s.AppStats.AppCount)
		for _, a := range s.TopApps {
			fmt.Fprintf(&b, "- %s: %d min\n", a.AppName, a.TotalDuration/60000)
		}
	}

	if len(s.Notes) > 0 {
		b.WriteString("\nPersonal notes:\n")
		for _, n := range s.Notes {
			fmt.Fprintf(&b, "- %s\n", n.Content)
		}
	}

	return b.String()
}
