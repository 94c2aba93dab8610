// ABOUTME: SQLite schema for the tracking database
// ABOUTME: Base tables only; later columns arrive via additive migrations
package sqlite

// Schema contains the CREATE TABLE statements for all seven tables in
// their first-release shape. Columns added after the first release live
// in migrate.go so existing databases pick them up.
const Schema = `
-- Tracked activities (manual entries, health imports, Strava)
CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    duration INTEGER DEFAULT 0,
    details TEXT,
    source TEXT DEFAULT 'manual',
    metadata TEXT DEFAULT '{}',
    calories REAL DEFAULT 0,
    distance REAL DEFAULT 0,
    sport_type TEXT
);

-- Visited places
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    timestamp INTEGER NOT NULL,
    accuracy REAL DEFAULT 0,
    name TEXT
);

-- Device call history
CREATE TABLE IF NOT EXISTS call_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    phone_number TEXT NOT NULL,
    contact_name TEXT,
    call_type TEXT NOT NULL,
    call_date INTEGER NOT NULL,
    duration INTEGER DEFAULT 0
);

-- One aggregated summary row per day
CREATE TABLE IF NOT EXISTS daily_summaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL UNIQUE,
    morning_activity TEXT,
    afternoon_activity TEXT,
    evening_activity TEXT,
    total_steps INTEGER DEFAULT 0,
    active_minutes INTEGER DEFAULT 0,
    most_visited_location INTEGER,
    most_called_contact TEXT,
    summary_data TEXT DEFAULT '{}'
);

-- One AI-generated narrative per day
CREATE TABLE IF NOT EXISTS narrative_summaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL UNIQUE,
    summary TEXT NOT NULL,
    created_at INTEGER
);

-- Free-text notes, several per day allowed
CREATE TABLE IF NOT EXISTS user_daily_notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    content TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    created_at INTEGER,
    updated_at INTEGER
);

-- Per-session app usage records
CREATE TABLE IF NOT EXISTS app_usage (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    app_name TEXT NOT NULL,
    package_name TEXT NOT NULL,
    category TEXT,
    duration INTEGER DEFAULT 0,
    timestamp INTEGER NOT NULL,
    session_date TEXT NOT NULL
);
`

// Indexes covers the query-critical columns. Created after migrations
// so indexes over migrated columns (strava_id) can succeed.
const Indexes = `
CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time);
CREATE INDEX IF NOT EXISTS idx_activities_type ON activities(type);
CREATE INDEX IF NOT EXISTS idx_activities_source ON activities(source);
CREATE INDEX IF NOT EXISTS idx_activities_strava_id ON activities(strava_id);
CREATE INDEX IF NOT EXISTS idx_locations_timestamp ON locations(timestamp);
CREATE INDEX IF NOT EXISTS idx_locations_coords ON locations(latitude, longitude);
CREATE INDEX IF NOT EXISTS idx_call_logs_date ON call_logs(call_date);
CREATE INDEX IF NOT EXISTS idx_call_logs_type ON call_logs(call_type);
CREATE INDEX IF NOT EXISTS idx_daily_summaries_date ON daily_summaries(date);
CREATE INDEX IF NOT EXISTS idx_narrative_summaries_date ON narrative_summaries(date);
CREATE INDEX IF NOT EXISTS idx_user_daily_notes_date ON user_daily_notes(date);
CREATE INDEX IF NOT EXISTS idx_app_usage_session_date ON app_usage(session_date);
CREATE INDEX IF NOT EXISTS idx_app_usage_app_name ON app_usage(app_name);
CREATE INDEX IF NOT EXISTS idx_app_usage_timestamp ON app_usage(timestamp);
`

// CreateSchema creates all tables. Safe to call on every startup.
func (db *DB) CreateSchema() error {
	_, err := db.Exec(Schema)
	return err
}
