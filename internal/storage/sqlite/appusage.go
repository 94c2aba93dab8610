// ABOUTME: App usage storage operations for SQLite
// ABOUTME: Day-string keyed sessions with per-app and per-category stats
package sqlite

import (
	"database/sql"
	"time"

	"github.com/minakami/minakami/internal/models"
)

const appUsageColumns = `id, app_name, package_name, category, duration, timestamp,
	session_date, COALESCE(source, 'manual')`

// AppUsageStore handles app usage persistence. Unlike the
// millisecond-keyed tables, range queries here run over the
// denormalized session_date day string.
type AppUsageStore struct {
	db  *DB
	obs Observer
}

// NewAppUsageStore creates a new AppUsageStore.
func NewAppUsageStore(db *DB, obs Observer) *AppUsageStore {
	if obs == nil {
		obs = NopObserver{}
	}
	return &AppUsageStore{db: db, obs: obs}
}

// Add inserts a usage session and returns its id. SessionDate is
// derived from the timestamp when absent.
func (s *AppUsageStore) Add(u *models.AppUsage) (id int64, err error) {
	defer observe(s.obs, "appusage.add", time.Now(), &err)

	sessionDate := u.SessionDate
	if sessionDate == "" {
		sessionDate = time.UnixMilli(u.Timestamp).Local().Format(dayFormat)
	}
	source := u.Source
	if source == "" {
		source = models.UsageSourceManual
	}

	res, err := s.db.Exec(`
		INSERT INTO app_usage (app_name, package_name, category, duration, timestamp, session_date, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.AppName, u.PackageName, nullString(u.Category), u.Duration, u.Timestamp, sessionDate, source)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetForDate retrieves usage sessions for one day string.
func (s *AppUsageStore) GetForDate(date string) (usage []models.AppUsage, err error) {
	defer observe(s.obs, "appusage.get_for_date", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+appUsageColumns+`
		FROM app_usage
		WHERE session_date = ?
		ORDER BY duration DESC
	`, date)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanAppUsage(rows)
}

// GetForRange retrieves usage sessions for the inclusive day-string
// range [startDate, endDate].
func (s *AppUsageStore) GetForRange(startDate, endDate string) (usage []models.AppUsage, err error) {
	defer observe(s.obs, "appusage.get_for_range", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+appUsageColumns+`
		FROM app_usage
		WHERE session_date BETWEEN ? AND ?
		ORDER BY session_date ASC, duration DESC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanAppUsage(rows)
}

// Stats aggregates usage for the inclusive day-string range. Zero
// values, never nil, when nothing matches.
func (s *AppUsageStore) Stats(startDate, endDate string) (stats models.AppUsageStats, err error) {
	defer observe(s.obs, "appusage.stats", time.Now(), &err)

	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(duration), 0),
			COUNT(DISTINCT package_name),
			COUNT(*)
		FROM app_usage
		WHERE session_date BETWEEN ? AND ?
	`, startDate, endDate).Scan(&stats.TotalDuration, &stats.AppCount, &stats.SessionCount)
	return stats, err
}

// TopApps ranks apps by total duration within the day range.
func (s *AppUsageStore) TopApps(startDate, endDate string, limit int) (apps []models.AppUsageEntry, err error) {
	defer observe(s.obs, "appusage.top_apps", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT app_name, package_name, COALESCE(SUM(duration), 0)
		FROM app_usage
		WHERE session_date BETWEEN ? AND ?
		GROUP BY package_name
		ORDER BY SUM(duration) DESC
		LIMIT ?
	`, startDate, endDate, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var a models.AppUsageEntry
		if err := rows.Scan(&a.AppName, &a.PackageName, &a.TotalDuration); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// CategoryBreakdown sums durations per category within the day range.
func (s *AppUsageStore) CategoryBreakdown(startDate, endDate string) (cats []models.CategoryUsage, err error) {
	defer observe(s.obs, "appusage.category_breakdown", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT COALESCE(category, ''), COALESCE(SUM(duration), 0)
		FROM app_usage
		WHERE session_date BETWEEN ? AND ?
		GROUP BY category
		ORDER BY SUM(duration) DESC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c models.CategoryUsage
		if err := rows.Scan(&c.Category, &c.TotalDuration); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// DeleteForDate removes all usage sessions for one day, returning the
// number of rows deleted.
func (s *AppUsageStore) DeleteForDate(date string) (n int64, err error) {
	defer observe(s.obs, "appusage.delete_for_date", time.Now(), &err)

	res, err := s.db.Exec("DELETE FROM app_usage WHERE session_date = ?", date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAppUsage(rows *sql.Rows) ([]models.AppUsage, error) {
	var usage []models.AppUsage

	for rows.Next() {
		var (
			u        models.AppUsage
			category sql.NullString
		)
		err := rows.Scan(&u.ID, &u.AppName, &u.PackageName, &category, &u.Duration,
			&u.Timestamp, &u.SessionDate, &u.Source)
		if err != nil {
			return nil, err
		}
		u.Category = category.String
		usage = append(usage, u)
	}

	return usage, rows.Err()
}
