// ABOUTME: User daily note storage for SQLite
// ABOUTME: Multiple fully-mutable free-text notes per calendar day
package sqlite

import (
	"database/sql"
	"time"

	"github.com/minakami/minakami/internal/models"
)

// NoteStore handles daily note persistence.
type NoteStore struct {
	db  *DB
	obs Observer
}

// NewNoteStore creates a new NoteStore.
func NewNoteStore(db *DB, obs Observer) *NoteStore {
	if obs == nil {
		obs = NopObserver{}
	}
	return &NoteStore{db: db, obs: obs}
}

// Add inserts a note and returns its id. A zero Timestamp defaults to
// now; creation and update stamps are set by the store.
func (s *NoteStore) Add(n *models.UserDailyNote) (id int64, err error) {
	defer observe(s.obs, "note.add", time.Now(), &err)

	now := time.Now().UnixMilli()
	ts := n.Timestamp
	if ts == 0 {
		ts = now
	}

	res, err := s.db.Exec(`
		INSERT INTO user_daily_notes (date, content, timestamp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, n.Date, n.Content, ts, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves a note by id, or nil if absent.
func (s *NoteStore) GetByID(id int64) (n *models.UserDailyNote, err error) {
	defer observe(s.obs, "note.get_by_id", time.Now(), &err)

	row := s.db.QueryRow(`
		SELECT id, date, content, timestamp, COALESCE(created_at, 0), COALESCE(updated_at, 0)
		FROM user_daily_notes
		WHERE id = ?
	`, id)
	if row == nil {
		return nil, ErrNotOpen
	}

	var out models.UserDailyNote
	err = row.Scan(&out.ID, &out.Date, &out.Content, &out.Timestamp, &out.CreatedAt, &out.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForDate retrieves all notes for a date, oldest first.
func (s *NoteStore) GetForDate(date string) (notes []models.UserDailyNote, err error) {
	defer observe(s.obs, "note.get_for_date", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT id, date, content, timestamp, COALESCE(created_at, 0), COALESCE(updated_at, 0)
		FROM user_daily_notes
		WHERE date = ?
		ORDER BY timestamp ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var n models.UserDailyNote
		if err := rows.Scan(&n.ID, &n.Date, &n.Content, &n.Timestamp, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update replaces a note's content and refreshes updated_at.
func (s *NoteStore) Update(id int64, content string) (err error) {
	defer observe(s.obs, "note.update", time.Now(), &err)

	_, err = s.db.Exec(`
		UPDATE user_daily_notes SET content = ?, updated_at = ? WHERE id = ?
	`, content, time.Now().UnixMilli(), id)
	return err
}

// Delete removes a note by id.
func (s *NoteStore) Delete(id int64) (err error) {
	defer observe(s.obs, "note.delete", time.Now(), &err)

	_, err = s.db.Exec("DELETE FROM user_daily_notes WHERE id = ?", id)
	return err
}

// Search returns notes whose content contains the query string, newest
// first, at most limit rows.
func (s *NoteStore) Search(query string, limit int) (notes []models.UserDailyNote, err error) {
	defer observe(s.obs, "note.search", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT id, date, content, timestamp, COALESCE(created_at, 0), COALESCE(updated_at, 0)
		FROM user_daily_notes
		WHERE content LIKE ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var n models.UserDailyNote
		if err := rows.Scan(&n.ID, &n.Date, &n.Content, &n.Timestamp, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
