// ABOUTME: Location storage operations for SQLite
// ABOUTME: Visit tracking, nearby lookup, and most-visited rankings
package sqlite

import (
	"database/sql"
	"math"
	"time"

	"github.com/minakami/minakami/internal/models"
)

// metersPerDegreeLat is the approximate size of one degree of latitude.
const metersPerDegreeLat = 111320.0

const locationColumns = `id, latitude, longitude, timestamp, accuracy, name,
	COALESCE(visit_count, 1), COALESCE(last_visited, 0)`

// LocationStore handles location persistence.
type LocationStore struct {
	db  *DB
	obs Observer
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(db *DB, obs Observer) *LocationStore {
	if obs == nil {
		obs = NopObserver{}
	}
	return &LocationStore{db: db, obs: obs}
}

// Add inserts a location with visit_count 1 and returns its id.
// LastVisited defaults to the sample timestamp.
func (s *LocationStore) Add(loc *models.Location) (id int64, err error) {
	defer observe(s.obs, "location.add", time.Now(), &err)

	lastVisited := loc.LastVisited
	if lastVisited == 0 {
		lastVisited = loc.Timestamp
	}

	res, err := s.db.Exec(`
		INSERT INTO locations (latitude, longitude, timestamp, accuracy, name, visit_count, last_visited)
		VALUES (?, ?, ?, ?, ?, 1, ?)
	`, loc.Latitude, loc.Longitude, loc.Timestamp, loc.Accuracy, nullString(loc.Name), lastVisited)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID retrieves a location by id, or nil if absent.
func (s *LocationStore) GetByID(id int64) (loc *models.Location, err error) {
	defer observe(s.obs, "location.get_by_id", time.Now(), &err)

	row := s.db.QueryRow(`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
	return scanLocationRow(row)
}

// GetForDate retrieves locations recorded inside the local calendar day.
func (s *LocationStore) GetForDate(date string) ([]models.Location, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	return s.GetForRange(start, end)
}

// GetForRange retrieves locations with timestamp in the inclusive
// millisecond range [start, end].
func (s *LocationStore) GetForRange(start, end int64) (locs []models.Location, err error) {
	defer observe(s.obs, "location.get_for_range", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+locationColumns+`
		FROM locations
		WHERE timestamp BETWEEN ? AND ?
		ORDER BY timestamp ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanLocations(rows)
}

// UpdateName sets or replaces a location's display name.
func (s *LocationStore) UpdateName(id int64, name string) (err error) {
	defer observe(s.obs, "location.update_name", time.Now(), &err)

	_, err = s.db.Exec("UPDATE locations SET name = ? WHERE id = ?", nullString(name), id)
	return err
}

// RecordVisit increments visit_count by one and stamps last_visited.
// The increment happens inside a single statement, so visit_count never
// goes backwards even under concurrent callers.
func (s *LocationStore) RecordVisit(id int64, visitedAt int64) (err error) {
	defer observe(s.obs, "location.record_visit", time.Now(), &err)

	_, err = s.db.Exec(`
		UPDATE locations
		SET visit_count = COALESCE(visit_count, 1) + 1, last_visited = ?
		WHERE id = ?
	`, visitedAt, id)
	return err
}

// FindNearby returns the closest stored location within radiusMeters of
// the given point, or nil when nothing is in range. A degree bounding
// box pre-filters candidates; ranking is by squared planar distance.
// This is an approximation, not a geodesic search; accuracy degrades
// near the poles and for large radii.
func (s *LocationStore) FindNearby(lat, lon, radiusMeters float64) (loc *models.Location, err error) {
	defer observe(s.obs, "location.find_nearby", time.Now(), &err)

	latDelta := radiusMeters / metersPerDegreeLat
	lonScale := math.Cos(lat * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonDelta := radiusMeters / (metersPerDegreeLat * lonScale)

	rows, err := s.db.Query(`
		SELECT `+locationColumns+`
		FROM locations
		WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
	`, lat-latDelta, lat+latDelta, lon-lonDelta, lon+lonDelta)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	candidates, err := scanLocations(rows)
	if err != nil {
		return nil, err
	}

	var best *models.Location
	bestDist := math.MaxFloat64
	for i := range candidates {
		c := &candidates[i]
		dLat := (c.Latitude - lat) * metersPerDegreeLat
		dLon := (c.Longitude - lon) * metersPerDegreeLat * lonScale
		dist := dLat*dLat + dLon*dLon
		if dist <= radiusMeters*radiusMeters && dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best, nil
}

// MostVisited returns up to limit locations ranked by visit count.
func (s *LocationStore) MostVisited(limit int) (locs []models.Location, err error) {
	defer observe(s.obs, "location.most_visited", time.Now(), &err)

	rows, err := s.db.Query(`
		SELECT `+locationColumns+`
		FROM locations
		ORDER BY COALESCE(visit_count, 1) DESC, COALESCE(last_visited, 0) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanLocations(rows)
}

// Stats aggregates all stored locations. Zero values when empty.
func (s *LocationStore) Stats() (stats models.LocationStats, err error) {
	defer observe(s.obs, "location.stats", time.Now(), &err)

	err = s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(COALESCE(visit_count, 1)), 0),
			COUNT(name)
		FROM locations
	`).Scan(&stats.TotalLocations, &stats.TotalVisits, &stats.NamedLocations)
	return stats, err
}

// Delete removes a location by id.
func (s *LocationStore) Delete(id int64) (err error) {
	defer observe(s.obs, "location.delete", time.Now(), &err)

	_, err = s.db.Exec("DELETE FROM locations WHERE id = ?", id)
	return err
}

func scanLocationRow(row *sql.Row) (*models.Location, error) {
	if row == nil {
		return nil, ErrNotOpen
	}

	var (
		loc  models.Location
		name sql.NullString
	)
	err := row.Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.Timestamp,
		&loc.Accuracy, &name, &loc.VisitCount, &loc.LastVisited)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	loc.Name = name.String
	return &loc, nil
}

func scanLocations(rows *sql.Rows) ([]models.Location, error) {
	var locs []models.Location

	for rows.Next() {
		var (
			loc  models.Location
			name sql.NullString
		)
		err := rows.Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.Timestamp,
			&loc.Accuracy, &name, &loc.VisitCount, &loc.LastVisited)
		if err != nil {
			return nil, err
		}
		loc.Name = name.String
		locs = append(locs, loc)
	}

	return locs, rows.Err()
}
