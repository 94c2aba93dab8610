// ABOUTME: Daily and narrative summary storage for SQLite
// ABOUTME: Replace-on-conflict upserts keyed on the unique date column
package sqlite

import (
	"database/sql"
	"time"

	"github.com/minakami/minakami/internal/models"
)

// SummaryStore handles daily and narrative summary persistence.
type SummaryStore struct {
	db  *DB
	obs Observer
}

// NewSummaryStore creates a new SummaryStore.
func NewSummaryStore(db *DB, obs Observer) *SummaryStore {
	if obs == nil {
		obs = NopObserver{}
	}
	return &SummaryStore{db: db, obs: obs}
}

// UpsertDaily inserts or replaces the daily summary for sum.Date.
// A replace discards the previous row entirely; callers must supply the
// full field set they want kept.
func (s *SummaryStore) UpsertDaily(sum *models.DailySummary) (err error) {
	defer observe(s.obs, "summary.upsert_daily", time.Now(), &err)

	data, err := marshalJSONColumn(sum.SummaryData)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO daily_summaries
			(date, morning_activity, afternoon_activity, evening_activity,
			 total_steps, active_minutes, most_visited_location, most_called_contact, summary_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sum.Date, nullString(sum.MorningActivity), nullString(sum.AfternoonActivity),
		nullString(sum.EveningActivity), sum.TotalSteps, sum.ActiveMinutes,
		nullInt64(sum.MostVisitedLocationID), nullString(sum.MostCalledContact), data)
	return err
}

// GetDaily retrieves the daily summary for a date, or nil if absent.
// The most-visited location name is resolved via left join.
func (s *SummaryStore) GetDaily(date string) (sum *models.DailySummary, err error) {
	defer observe(s.obs, "summary.get_daily", time.Now(), &err)

	row := s.db.QueryRow(`
		SELECT d.id, d.date, d.morning_activity, d.afternoon_activity, d.evening_activity,
			d.total_steps, d.active_minutes, d.most_visited_location, l.name,
			d.most_called_contact, d.summary_data
		FROM daily_summaries d
		LEFT JOIN locations l ON l.id = d.most_visited_location
		WHERE d.date = ?
	`, date)
	if row == nil {
		return nil, ErrNotOpen
	}

	var (
		out          models.DailySummary
		morning      sql.NullString
		afternoon    sql.NullString
		evening      sql.NullString
		locationID   sql.NullInt64
		locationName sql.NullString
		contact      sql.NullString
		data         sql.NullString
	)
	err = row.Scan(&out.ID, &out.Date, &morning, &afternoon, &evening,
		&out.TotalSteps, &out.ActiveMinutes, &locationID, &locationName, &contact, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out.MorningActivity = morning.String
	out.AfternoonActivity = afternoon.String
	out.EveningActivity = evening.String
	if locationID.Valid {
		out.MostVisitedLocationID = &locationID.Int64
	}
	out.MostVisitedLocationName = locationName.String
	out.MostCalledContact = contact.String
	out.SummaryData = unmarshalJSONColumn(data)
	return &out, nil
}

// UpsertNarrative inserts or replaces the narrative for a date.
func (s *SummaryStore) UpsertNarrative(date, summary string) (err error) {
	defer observe(s.obs, "summary.upsert_narrative", time.Now(), &err)

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO narrative_summaries (date, summary, created_at)
		VALUES (?, ?, ?)
	`, date, summary, time.Now().UnixMilli())
	return err
}

// GetNarrative retrieves the narrative for a date, or nil if absent.
func (s *SummaryStore) GetNarrative(date string) (n *models.NarrativeSummary, err error) {
	defer observe(s.obs, "summary.get_narrative", time.Now(), &err)

	row := s.db.QueryRow(`
		SELECT id, date, summary, COALESCE(created_at, 0)
		FROM narrative_summaries
		WHERE date = ?
	`, date)
	if row == nil {
		return nil, ErrNotOpen
	}

	var out models.NarrativeSummary
	err = row.Scan(&out.ID, &out.Date, &out.Summary, &out.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNarrativeRange retrieves narratives for the inclusive day-string
// range [startDate, endDate], oldest first.
func (s *SummaryStore) GetNarrativeRange(startDate, endDate string) (ns []models.NarrativeSummary, err error) {
	defer observe(s.obs, "summary.get_narrative_range", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT id, date, summary, COALESCE(created_at, 0)
		FROM narrative_summaries
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var n models.NarrativeSummary
		if err := rows.Scan(&n.ID, &n.Date, &n.Summary, &n.CreatedAt); err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

// DeleteNarrative removes the narrative for a date.
func (s *SummaryStore) DeleteNarrative(date string) (err error) {
	defer observe(s.obs, "summary.delete_narrative", time.Now(), &err)

	_, err = s.db.Exec("DELETE FROM narrative_summaries WHERE date = ?", date)
	return err
}
