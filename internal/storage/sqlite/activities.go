// ABOUTME: Activity storage operations for SQLite
// ABOUTME: CRUD, range queries, Strava lookup, and aggregate stats
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/minakami/minakami/internal/models"
)

const activityColumns = `id, type, start_time, end_time, duration, details, source,
	metadata, calories, distance, sport_type, strava_id,
	heart_rate_avg, heart_rate_max, elevation_gain`

// ActivityStore handles activity persistence.
type ActivityStore struct {
	db  *DB
	obs Observer
}

// NewActivityStore creates a new ActivityStore. A nil observer means no
// instrumentation.
func NewActivityStore(db *DB, obs Observer) *ActivityStore {
	if obs == nil {
		obs = NopObserver{}
	}
	return &ActivityStore{db: db, obs: obs}
}

// Add inserts an activity and returns its id.
func (s *ActivityStore) Add(a *models.Activity) (id int64, err error) {
	defer observe(s.obs, "activity.add", time.Now(), &err)

	meta, err := marshalJSONColumn(a.Metadata)
	if err != nil {
		return 0, err
	}
	source := a.Source
	if source == "" {
		source = models.SourceManual
	}

	res, err := s.db.Exec(`
		INSERT INTO activities (type, start_time, end_time, duration, details, source,
			metadata, calories, distance, sport_type, strava_id,
			heart_rate_avg, heart_rate_max, elevation_gain)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Type, a.StartTime, a.EndTime, a.Duration, nullString(a.Details), source,
		meta, a.Calories, a.Distance, nullString(a.SportType), nullString(a.StravaID),
		a.HeartRateAvg, a.HeartRateMax, a.ElevationGain)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves an activity by id, or nil if absent.
func (s *ActivityStore) GetByID(id int64) (a *models.Activity, err error) {
	defer observe(s.obs, "activity.get_by_id", time.Now(), &err)

	row := s.db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	return scanActivityRow(row)
}

// GetForDate retrieves activities whose start_time falls inside the
// local calendar day, ordered by start time.
func (s *ActivityStore) GetForDate(date string) ([]models.Activity, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	return s.GetForRange(start, end)
}

// GetForRange retrieves activities with start_time in the inclusive
// millisecond range [start, end].
func (s *ActivityStore) GetForRange(start, end int64) (acts []models.Activity, err error) {
	defer observe(s.obs, "activity.get_for_range", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE start_time BETWEEN ? AND ?
		ORDER BY start_time ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanActivities(rows)
}

// GetByType retrieves activities of one type within the range.
func (s *ActivityStore) GetByType(actType string, start, end int64) (acts []models.Activity, err error) {
	defer observe(s.obs, "activity.get_by_type", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE type = ? AND start_time BETWEEN ? AND ?
		ORDER BY start_time ASC
	`, actType, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanActivities(rows)
}

// GetBySource retrieves all activities from one source, newest first.
func (s *ActivityStore) GetBySource(source string) (acts []models.Activity, err error) {
	defer observe(s.obs, "activity.get_by_source", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE source = ?
		ORDER BY start_time DESC
	`, source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanActivities(rows)
}

// GetStravaActivities retrieves all Strava-sourced activities.
func (s *ActivityStore) GetStravaActivities() ([]models.Activity, error) {
	return s.GetBySource(models.SourceStrava)
}

// FindByStravaID retrieves the activity with the given Strava id, or
// nil if none exists. Importers must call this before inserting a
// Strava activity; the schema has no unique constraint on strava_id,
// so at-most-one-row is a contract on callers.
func (s *ActivityStore) FindByStravaID(stravaID string) (a *models.Activity, err error) {
	defer observe(s.obs, "activity.find_by_strava_id", time.Now(), &err)

	row := s.db.QueryRow(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE strava_id = ?
		LIMIT 1
	`, stravaID)
	return scanActivityRow(row)
}

// Update applies a partial update. Nil patch fields leave the stored
// value unchanged; an empty patch is a no-op.
func (s *ActivityStore) Update(id int64, patch models.ActivityPatch) (err error) {
	defer observe(s.obs, "activity.update", time.Now(), &err)

	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		add("end_time", *patch.EndTime)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.Details != nil {
		add("details", *patch.Details)
	}
	if patch.Metadata != nil {
		meta, merr := marshalJSONColumn(patch.Metadata)
		if merr != nil {
			return merr
		}
		add("metadata", meta)
	}
	if patch.Calories != nil {
		add("calories", *patch.Calories)
	}
	if patch.Distance != nil {
		add("distance", *patch.Distance)
	}
	if patch.SportType != nil {
		add("sport_type", *patch.SportType)
	}
	if patch.HeartRateAvg != nil {
		add("heart_rate_avg", *patch.HeartRateAvg)
	}
	if patch.HeartRateMax != nil {
		add("heart_rate_max", *patch.HeartRateMax)
	}
	if patch.ElevationGain != nil {
		add("elevation_gain", *patch.ElevationGain)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err = s.db.Exec(fmt.Sprintf("UPDATE activities SET %s WHERE id = ?", strings.Join(sets, ", ")), args...)
	return err
}

// Delete removes an activity by id.
func (s *ActivityStore) Delete(id int64) (err error) {
	defer observe(s.obs, "activity.delete", time.Now(), &err)

	_, err = s.db.Exec("DELETE FROM activities WHERE id = ?", id)
	return err
}

// Stats aggregates activities in the inclusive millisecond range.
// Returns zero values, never nil, when nothing matches.
func (s *ActivityStore) Stats(start, end int64) (stats models.ActivityStats, err error) {
	defer observe(s.obs, "activity.stats", time.Now(), &err)

	err = s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(duration), 0),
			COALESCE(SUM(calories), 0),
			COALESCE(SUM(distance), 0)
		FROM activities
		WHERE start_time BETWEEN ? AND ?
	`, start, end).Scan(&stats.TotalActivities, &stats.TotalDuration,
		&stats.TotalCalories, &stats.TotalDistance)
	return stats, err
}

// TypeBreakdown returns per-type counts and durations for the range,
// most frequent first.
func (s *ActivityStore) TypeBreakdown(start, end int64) (counts []models.ActivityTypeCount, err error) {
	defer observe(s.obs, "activity.type_breakdown", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT type, COUNT(*), COALESCE(SUM(duration), 0)
		FROM activities
		WHERE start_time BETWEEN ? AND ?
		GROUP BY type
		ORDER BY COUNT(*) DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c models.ActivityTypeCount
		if err := rows.Scan(&c.Type, &c.Count, &c.TotalDuration); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// scanActivityRow scans a single-row query, mapping no-rows to nil.
func scanActivityRow(row *sql.Row) (*models.Activity, error) {
	if row == nil {
		return nil, ErrNotOpen
	}

	var (
		a         models.Activity
		endTime   sql.NullInt64
		details   sql.NullString
		metadata  sql.NullString
		sportType sql.NullString
		stravaID  sql.NullString
	)
	err := row.Scan(&a.ID, &a.Type, &a.StartTime, &endTime, &a.Duration, &details,
		&a.Source, &metadata, &a.Calories, &a.Distance, &sportType, &stravaID,
		&a.HeartRateAvg, &a.HeartRateMax, &a.ElevationGain)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.EndTime = endTime.Int64
	a.Details = details.String
	a.Metadata = unmarshalJSONColumn(metadata)
	a.SportType = sportType.String
	a.StravaID = stravaID.String
	return &a, nil
}

// scanActivities scans a multi-row result set.
func scanActivities(rows *sql.Rows) ([]models.Activity, error) {
	var acts []models.Activity

	for rows.Next() {
		var (
			a         models.Activity
			endTime   sql.NullInt64
			details   sql.NullString
			metadata  sql.NullString
			sportType sql.NullString
			stravaID  sql.NullString
		)
		err := rows.Scan(&a.ID, &a.Type, &a.StartTime, &endTime, &a.Duration, &details,
			&a.Source, &metadata, &a.Calories, &a.Distance, &sportType, &stravaID,
			&a.HeartRateAvg, &a.HeartRateMax, &a.ElevationGain)
		if err != nil {
			return nil, err
		}

		a.EndTime = endTime.Int64
		a.Details = details.String
		a.Metadata = unmarshalJSONColumn(metadata)
		a.SportType = sportType.String
		a.StravaID = stravaID.String
		acts = append(acts, a)
	}

	return acts, rows.Err()
}
