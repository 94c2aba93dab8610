// ABOUTME: Tracker facade exposing every store under one flat surface
// ABOUTME: Owns the connection lifecycle; Initialize is once-per-process
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/minakami/minakami/internal/models"
)

// Tracker aggregates all stores behind the flat method surface the rest
// of the application calls. Construct it, then call Initialize exactly
// once; every data method fails with ErrNotInitialized before that.
type Tracker struct {
	path string
	obs  Observer

	mu          sync.Mutex
	initialized bool

	db         *DB
	activities *ActivityStore
	locations  *LocationStore
	callLogs   *CallLogStore
	appUsage   *AppUsageStore
	summaries  *SummaryStore
	notes      *NoteStore
}

// NewTracker creates a tracker over the default database path.
func NewTracker() *Tracker {
	return NewTrackerWithPath(DefaultDBPath())
}

// NewTrackerWithPath creates a tracker over a custom database path.
// The database is not opened until Initialize.
func NewTrackerWithPath(path string) *Tracker {
	return &Tracker{path: path, obs: NopObserver{}}
}

// NewTrackerInMemory creates an initialized in-memory tracker (for
// testing).
func NewTrackerInMemory() (*Tracker, error) {
	t := &Tracker{path: ":memory:", obs: NopObserver{}}
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	if err := db.Bootstrap(); err != nil {
		_ = db.Close()
		return nil, err
	}
	t.attach(db)
	return t, nil
}

// SetObserver installs an instrumentation observer. Call before
// Initialize; a nil observer restores the no-op default.
func (t *Tracker) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	t.obs = o
}

// Initialize opens the database and runs the startup sequence: schema,
// migrations (best-effort), indexes (best-effort). Idempotent; calls
// after the first are no-ops.
func (t *Tracker) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	db, err := Open(t.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Bootstrap(); err != nil {
		_ = db.Close()
		return err
	}

	t.attach(db)
	return nil
}

func (t *Tracker) attach(db *DB) {
	t.db = db
	t.activities = NewActivityStore(db, t.obs)
	t.locations = NewLocationStore(db, t.obs)
	t.callLogs = NewCallLogStore(db, t.obs)
	t.appUsage = NewAppUsageStore(db, t.obs)
	t.summaries = NewSummaryStore(db, t.obs)
	t.notes = NewNoteStore(db, t.obs)
	t.initialized = true
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.initialized = false
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

func (t *Tracker) guard() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized {
		return ErrNotInitialized
	}
	return nil
}

// --- Escape hatches for direct store access ---

// Activities returns the activity store, or nil before Initialize.
func (t *Tracker) Activities() *ActivityStore { return t.activities }

// Locations returns the location store, or nil before Initialize.
func (t *Tracker) Locations() *LocationStore { return t.locations }

// CallLogs returns the call log store, or nil before Initialize.
func (t *Tracker) CallLogs() *CallLogStore { return t.callLogs }

// AppUsage returns the app usage store, or nil before Initialize.
func (t *Tracker) AppUsage() *AppUsageStore { return t.appUsage }

// Summaries returns the summary store, or nil before Initialize.
func (t *Tracker) Summaries() *SummaryStore { return t.summaries }

// Notes returns the note store, or nil before Initialize.
func (t *Tracker) Notes() *NoteStore { return t.notes }

// --- Raw SQL passthrough for callers that still need ad hoc queries ---

// Exec runs a mutating statement against the underlying handle.
func (t *Tracker) Exec(query string, args ...any) (sql.Result, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.db.Exec(query, args...)
}

// Query runs a query returning rows against the underlying handle.
func (t *Tracker) Query(query string, args ...any) (*sql.Rows, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.db.Query(query, args...)
}

// QueryRow runs a query returning at most one row.
func (t *Tracker) QueryRow(query string, args ...any) (*sql.Row, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.db.QueryRow(query, args...), nil
}

// QueryFirst is the legacy alias for QueryRow: it returns the first row
// of the result set. database/sql gives both single-row primitives the
// same shape.
func (t *Tracker) QueryFirst(query string, args ...any) (*sql.Row, error) {
	return t.QueryRow(query, args...)
}

// --- Activities ---

func (t *Tracker) AddActivity(a *models.Activity) (int64, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}
	return t.activities.Add(a)
}

func (t *Tracker) GetActivityByID(id int64) (*models.Activity, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.GetByID(id)
}

func (t *Tracker) GetActivitiesForDate(date string) ([]models.Activity, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.GetForDate(date)
}

func (t *Tracker) GetActivitiesForRange(start, end int64) ([]models.Activity, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.GetForRange(start, end)
}

func (t *Tracker) GetActivitiesByType(actType string, start, end int64) ([]models.Activity, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.GetByType(actType, start, end)
}

func (t *Tracker) GetStravaActivities() ([]models.Activity, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.GetStravaActivities()
}

func (t *Tracker) FindActivityByStravaID(stravaID string) (*models.Activity, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.FindByStravaID(stravaID)
}

func (t *Tracker) UpdateActivity(id int64, patch models.ActivityPatch) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.activities.Update(id, patch)
}

func (t *Tracker) DeleteActivity(id int64) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.activities.Delete(id)
}

func (t *Tracker) GetActivityStats(start, end int64) (models.ActivityStats, error) {
	if err := t.guard(); err != nil {
		return models.ActivityStats{}, err
	}
	return t.activities.Stats(start, end)
}

func (t *Tracker) GetActivityTypeBreakdown(start, end int64) ([]models.ActivityTypeCount, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.activities.TypeBreakdown(start, end)
}

// --- Locations ---

func (t *Tracker) AddLocation(loc *models.Location) (int64, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}
	return t.locations.Add(loc)
}

func (t *Tracker) GetLocationByID(id int64) (*models.Location, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.locations.GetByID(id)
}

func (t *Tracker) GetLocationsForDate(date string) ([]models.Location, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.locations.GetForDate(date)
}

func (t *Tracker) GetLocationsForRange(start, end int64) ([]models.Location, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.locations.GetForRange(start, end)
}

func (t *Tracker) UpdateLocationName(id int64, name string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.locations.UpdateName(id, name)
}

func (t *Tracker) UpdateLocationVisit(id int64, visitedAt int64) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.locations.RecordVisit(id, visitedAt)
}

func (t *Tracker) FindNearbyLocation(lat, lon, radiusMeters float64) (*models.Location, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.locations.FindNearby(lat, lon, radiusMeters)
}

func (t *Tracker) GetMostVisitedLocations(limit int) ([]models.Location, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.locations.MostVisited(limit)
}

func (t *Tracker) GetLocationStats() (models.LocationStats, error) {
	if err := t.guard(); err != nil {
		return models.LocationStats{}, err
	}
	return t.locations.Stats()
}

func (t *Tracker) DeleteLocation(id int64) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.locations.Delete(id)
}

// --- Call logs ---

func (t *Tracker) AddCallLog(c *models.CallLog) (int64, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}
	return t.callLogs.Add(c)
}

func (t *Tracker) GetCallLogByID(id int64) (*models.CallLog, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.callLogs.GetByID(id)
}

func (t *Tracker) GetCallLogsForDate(date string) ([]models.CallLog, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.callLogs.GetForDate(date)
}

func (t *Tracker) GetCallLogsForRange(start, end int64) ([]models.CallLog, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.callLogs.GetForRange(start, end)
}

func (t *Tracker) GetUnanalyzedCalls(limit int) ([]models.CallLog, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.callLogs.GetUnanalyzed(limit)
}

func (t *Tracker) MarkCallAnalyzed(id int64) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.callLogs.MarkAnalyzed(id)
}

func (t *Tracker) GetCallStats(start, end int64) (models.CallStats, error) {
	if err := t.guard(); err != nil {
		return models.CallStats{}, err
	}
	return t.callLogs.Stats(start, end)
}

func (t *Tracker) GetTopContacts(start, end int64, limit int) ([]models.ContactStat, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.callLogs.TopContacts(start, end, limit)
}

func (t *Tracker) DeleteCallLog(id int64) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.callLogs.Delete(id)
}

// --- App usage ---

func (t *Tracker) AddAppUsage(u *models.AppUsage) (int64, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}
	return t.appUsage.Add(u)
}

func (t *Tracker) GetAppUsageForDate(date string) ([]models.AppUsage, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.appUsage.GetForDate(date)
}

func (t *Tracker) GetAppUsageForRange(startDate, endDate string) ([]models.AppUsage, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.appUsage.GetForRange(startDate, endDate)
}

func (t *Tracker) GetAppUsageStats(startDate, endDate string) (models.AppUsageStats, error) {
	if err := t.guard(); err != nil {
		return models.AppUsageStats{}, err
	}
	return t.appUsage.Stats(startDate, endDate)
}

func (t *Tracker) GetTopApps(startDate, endDate string, limit int) ([]models.AppUsageEntry, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.appUsage.TopApps(startDate, endDate, limit)
}

func (t *Tracker) GetAppCategoryBreakdown(startDate, endDate string) ([]models.CategoryUsage, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.appUsage.CategoryBreakdown(startDate, endDate)
}

func (t *Tracker) DeleteAppUsageForDate(date string) (int64, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}
	return t.appUsage.DeleteForDate(date)
}

// --- Summaries ---

func (t *Tracker) SaveDailySummary(sum *models.DailySummary) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.summaries.UpsertDaily(sum)
}

func (t *Tracker) GetDailySummary(date string) (*models.DailySummary, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.summaries.GetDaily(date)
}

func (t *Tracker) SaveNarrativeSummary(date, summary string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.summaries.UpsertNarrative(date, summary)
}

func (t *Tracker) GetNarrativeSummary(date string) (*models.NarrativeSummary, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.summaries.GetNarrative(date)
}

func (t *Tracker) GetNarrativeSummaries(startDate, endDate string) ([]models.NarrativeSummary, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.summaries.GetNarrativeRange(startDate, endDate)
}

func (t *Tracker) DeleteNarrativeSummary(date string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.summaries.DeleteNarrative(date)
}

// --- Notes ---

func (t *Tracker) AddNote(n *models.UserDailyNote) (int64, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}
	return t.notes.Add(n)
}

func (t *Tracker) GetNoteByID(id int64) (*models.UserDailyNote, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.notes.GetByID(id)
}

func (t *Tracker) GetNotesForDate(date string) ([]models.UserDailyNote, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.notes.GetForDate(date)
}

func (t *Tracker) UpdateNote(id int64, content string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.notes.Update(id, content)
}

func (t *Tracker) DeleteNote(id int64) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.notes.Delete(id)
}

func (t *Tracker) SearchNotes(query string, limit int) ([]models.UserDailyNote, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}
	return t.notes.Search(query, limit)
}
