// ABOUTME: Demo data generator for development and screenshots
// ABOUTME: Seeds one plausible day of activities, places, calls, usage, and a note
package collectors

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

var demoApps = []struct {
	name     string
	pkg      string
	category string
}{
	{"Messages", "com.android.messaging", "communication"},
	{"Maps", "com.google.android.apps.maps", "navigation"},
	{"Spotify", "com.spotify.music", "music"},
	{"Chrome", "com.android.chrome", "browser"},
	{"Camera", "com.android.camera", "photography"},
}

var demoActivityTypes = []string{"walking", "running", "cycling", "yoga"}

// DemoSeeder generates fake tracking data.
type DemoSeeder struct {
	tracker *sqlite.Tracker
}

// NewDemoSeeder creates a demo data generator.
func NewDemoSeeder(tracker *sqlite.Tracker) *DemoSeeder {
	return &DemoSeeder{tracker: tracker}
}

// SeedDay fills one calendar day with demo data. Existing app usage for
// the day is replaced; other records accumulate.
func (ds *DemoSeeder) SeedDay(date string) error {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	batch := uuid.NewString()

	// Two or three activities spread over the day.
	for i, hour := range []int{7, 12, 18}[:2+rand.IntN(2)] {
		start := day.Add(time.Duration(hour) * time.Hour).UnixMilli()
		duration := int64(900 + rand.IntN(2700))
		actType := demoActivityTypes[rand.IntN(len(demoActivityTypes))]
		if _, err := ds.tracker.AddActivity(&models.Activity{
			Type:      actType,
			StartTime: start,
			EndTime:   start + duration*1000,
			Duration:  duration,
			Details:   fmt.Sprintf("demo %s #%d", actType, i+1),
			Source:    models.SourceManual,
			Metadata:  map[string]any{"demo_batch": batch},
			Calories:  float64(100 + rand.IntN(400)),
			Distance:  float64(rand.IntN(8000)),
		}); err != nil {
			return err
		}
	}

	// A couple of places around a fixed anchor point.
	anchorLat, anchorLon := 35.6812, 139.7671
	for i := 0; i < 2; i++ {
		if _, err := ds.tracker.AddLocation(&models.Location{
			Latitude:  anchorLat + float64(i)*0.01,
			Longitude: anchorLon + float64(i)*0.01,
			Timestamp: day.Add(time.Duration(9+i*4) * time.Hour).UnixMilli(),
			Name:      []string{"Home", "Office"}[i],
		}); err != nil {
			return err
		}
	}

	// A short call history.
	calls := []models.CallLog{
		{PhoneNumber: "+81-90-0000-0001", ContactName: "Aiko", CallType: models.CallOutgoing,
			CallDate: day.Add(10 * time.Hour).UnixMilli(), Duration: int64(60 + rand.IntN(600))},
		{PhoneNumber: "+81-90-0000-0002", CallType: models.CallMissed,
			CallDate: day.Add(15 * time.Hour).UnixMilli()},
	}
	if _, err := NewCallIngester(ds.tracker).Ingest(calls); err != nil {
		return err
	}

	// App usage for the day.
	usage := make([]models.AppUsage, 0, len(demoApps))
	for i, app := range demoApps {
		usage = append(usage, models.AppUsage{
			AppName:     app.name,
			PackageName: app.pkg,
			Category:    app.category,
			Duration:    int64((5 + rand.IntN(55)) * 60 * 1000),
			Timestamp:   day.Add(time.Duration(8+i) * time.Hour).UnixMilli(),
		})
	}
	if _, err := NewUsageIngester(ds.tracker).IngestDay(date, usage, models.UsageSourceDemo); err != nil {
		return err
	}

	if _, err := ds.tracker.AddNote(&models.UserDailyNote{
		Date:      date,
		Content:   "Demo day seeded for testing.",
		Timestamp: day.Add(21 * time.Hour).UnixMilli(),
	}); err != nil {
		return err
	}

	log.Printf("[Collector] Seeded demo data for %s (batch %s)", date, batch)
	return nil
}
