// ABOUTME: Call log storage operations for SQLite
// ABOUTME: Append-mostly history with call stats and top-contact ranking
package sqlite

import (
	"database/sql"
	"time"

	"github.com/minakami/minakami/internal/models"
)

const callLogColumns = `id, phone_number, contact_name, call_type, call_date, duration,
	COALESCE(is_analyzed, 0)`

// CallLogStore handles call history persistence.
type CallLogStore struct {
	db  *DB
	obs Observer
}

// NewCallLogStore creates a new CallLogStore.
func NewCallLogStore(db *DB, obs Observer) *CallLogStore {
	if obs == nil {
		obs = NopObserver{}
	}
	return &CallLogStore{db: db, obs: obs}
}

// Add inserts a call log entry and returns its id.
func (s *CallLogStore) Add(c *models.CallLog) (id int64, err error) {
	defer observe(s.obs, "calllog.add", time.Now(), &err)

	res, err := s.db.Exec(`
		INSERT INTO call_logs (phone_number, contact_name, call_type, call_date, duration, is_analyzed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.PhoneNumber, nullString(c.ContactName), c.CallType, c.CallDate, c.Duration, boolToInt(c.IsAnalyzed))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves a call log entry by id, or nil if absent.
func (s *CallLogStore) GetByID(id int64) (c *models.CallLog, err error) {
	defer observe(s.obs, "calllog.get_by_id", time.Now(), &err)

	row := s.db.QueryRow(`SELECT `+callLogColumns+` FROM call_logs WHERE id = ?`, id)
	return scanCallLogRow(row)
}

// GetForDate retrieves calls placed inside the local calendar day.
func (s *CallLogStore) GetForDate(date string) ([]models.CallLog, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	return s.GetForRange(start, end)
}

// GetForRange retrieves calls with call_date in the inclusive
// millisecond range [start, end], newest first.
func (s *CallLogStore) GetForRange(start, end int64) (calls []models.CallLog, err error) {
	defer observe(s.obs, "calllog.get_for_range", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+callLogColumns+`
		FROM call_logs
		WHERE call_date BETWEEN ? AND ?
		ORDER BY call_date DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanCallLogs(rows)
}

// GetUnanalyzed retrieves calls not yet consumed by downstream
// analysis, oldest first.
func (s *CallLogStore) GetUnanalyzed(limit int) (calls []models.CallLog, err error) {
	defer observe(s.obs, "calllog.get_unanalyzed", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+callLogColumns+`
		FROM call_logs
		WHERE COALESCE(is_analyzed, 0) = 0
		ORDER BY call_date ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanCallLogs(rows)
}

// MarkAnalyzed flags a call as consumed by analysis.
func (s *CallLogStore) MarkAnalyzed(id int64) (err error) {
	defer observe(s.obs, "calllog.mark_analyzed", time.Now(), &err)

	_, err = s.db.Exec("UPDATE call_logs SET is_analyzed = 1 WHERE id = ?", id)
	return err
}

// Stats aggregates call history in the inclusive millisecond range.
// Zero values, never nil, when nothing matches.
func (s *CallLogStore) Stats(start, end int64) (stats models.CallStats, err error) {
	defer observe(s.obs, "calllog.stats", time.Now(), &err)

	err = s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN call_type = 'incoming' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN call_type = 'outgoing' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN call_type = 'missed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(duration), 0)
		FROM call_logs
		WHERE call_date BETWEEN ? AND ?
	`, start, end).Scan(&stats.TotalCalls, &stats.IncomingCalls,
		&stats.OutgoingCalls, &stats.MissedCalls, &stats.TotalDuration)
	return stats, err
}

// TopContacts ranks contacts by call count within the range. Numbers
// without a saved contact name group by phone number.
func (s *CallLogStore) TopContacts(start, end int64, limit int) (contacts []models.ContactStat, err error) {
	defer observe(s.obs, "calllog.top_contacts", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT phone_number, COALESCE(contact_name, ''), COUNT(*), COALESCE(SUM(duration), 0)
		FROM call_logs
		WHERE call_date BETWEEN ? AND ?
		GROUP BY phone_number
		ORDER BY COUNT(*) DESC, SUM(duration) DESC
		LIMIT ?
	`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c models.ContactStat
		if err := rows.Scan(&c.PhoneNumber, &c.ContactName, &c.CallCount, &c.TotalDuration); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Delete removes a call log entry by id.
func (s *CallLogStore) Delete(id int64) (err error) {
	defer observe(s.obs, "calllog.delete", time.Now(), &err)

	_, err = s.db.Exec("DELETE FROM call_logs WHERE id = ?", id)
	return err
}

func scanCallLogRow(row *sql.Row) (*models.CallLog, error) {
	if row == nil {
		return nil, ErrNotOpen
	}

	var (
		c        models.CallLog
		name     sql.NullString
		analyzed int
	)
	err := row.Scan(&c.ID, &c.PhoneNumber, &name, &c.CallType, &c.CallDate, &c.Duration, &analyzed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.ContactName = name.String
	c.IsAnalyzed = analyzed != 0
	return &c, nil
}

func scanCallLogs(rows *sql.Rows) ([]models.CallLog, error) {
	var calls []models.CallLog

	for rows.Next() {
		var (
			c        models.CallLog
			name     sql.NullString
			analyzed int
		)
		err := rows.Scan(&c.ID, &c.PhoneNumber, &name, &c.CallType, &c.CallDate, &c.Duration, &analyzed)
		if err != nil {
			return nil, err
		}
		c.ContactName = name.String
		c.IsAnalyzed = analyzed != 0
		calls = append(calls, c)
	}

	return calls, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
