// Package storage provides SQLite-based persistence for play-session records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
// database/sql pools connections, so a Store may be shared between SSH sessions.
type Store struct {
	db *sql.DB
}

// SessionRecord is the timing summary of one mode session (menu or in-game),
// written when the mode is left.
type SessionRecord struct {
	ID              int64
	Scene           string
	User            string
	Lanes           int
	RenderCapHz     float64 // 0 = uncapped
	Ticks           int64
	FramesRendered  int64
	FramesSkipped   int64
	SaturatedFrames int64
	SongSeconds     float64 // simulated time
	WallSeconds     float64
	CreatedAt       time.Time
}

// FPS returns the average render rate over the session.
func (r SessionRecord) FPS() float64 {
	if r.WallSeconds <= 0 {
		return 0
	}
	return float64(r.FramesRendered) / r.WallSeconds
}

// Lag returns how far simulated time fell behind wall time.
func (r SessionRecord) Lag() float64 {
	lag := r.WallSeconds - r.SongSeconds
	if lag < 0 {
		return 0
	}
	return lag
}

// Summary aggregates the sessions of one scene.
type Summary struct {
	Scene       string
	Sessions    int
	Ticks       int64
	WallSeconds float64
	AvgFPS      float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			lanes INTEGER NOT NULL DEFAULT 0,
			render_cap_hz REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			frames_rendered INTEGER NOT NULL DEFAULT 0,
			frames_skipped INTEGER NOT NULL DEFAULT 0,
			saturated_frames INTEGER NOT NULL DEFAULT 0,
			song_seconds REAL NOT NULL DEFAULT 0,
			wall_seconds REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_scene ON sessions(scene);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a session summary.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (scene, username, lanes, render_cap_hz, ticks, frames_rendered, frames_skipped,
		  saturated_frames, song_seconds, wall_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Scene,
		rec.User,
		rec.Lanes,
		rec.RenderCapHz,
		rec.Ticks,
		rec.FramesRendered,
		rec.FramesSkipped,
		rec.SaturatedFrames,
		rec.SongSeconds,
		rec.WallSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, scene, username, lanes, render_cap_hz, ticks, frames_rendered,
	frames_skipped, saturated_frames, song_seconds, wall_seconds, created_at`

// RecentSessions retrieves the newest sessions across all scenes.
// An empty scene matches every scene.
func (s *Store) RecentSessions(scene string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE (? = '' OR scene = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		scene, scene, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Scene, &r.User, &r.Lanes, &r.RenderCapHz, &r.Ticks,
			&r.FramesRendered, &r.FramesSkipped, &r.SaturatedFrames,
			&r.SongSeconds, &r.WallSeconds, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Scenes returns the distinct scene IDs that have records, sorted.
func (s *Store) Scenes() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT scene FROM sessions ORDER BY scene`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenes: %w", err)
	}
	defer rows.Close()

	var scenes []string
	for rows.Next() {
		var scene string
		if err := rows.Scan(&scene); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

// Summarize aggregates all sessions of a scene.
// A scene without records yields a zero Summary.
func (s *Store) Summarize(scene string) (Summary, error) {
	sum := Summary{Scene: scene}

	var ticks, frames sql.NullInt64
	var wall sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(ticks), SUM(frames_rendered), SUM(wall_seconds)
		 FROM sessions
		 WHERE scene = ?`,
		scene,
	).Scan(&sum.Sessions, &ticks, &frames, &wall)
	if err != nil {
		return sum, fmt.Errorf("storage: cannot summarize sessions: %w", err)
	}

	sum.Ticks = ticks.Int64
	sum.WallSeconds = wall.Float64
	if sum.WallSeconds > 0 {
		sum.AvgFPS = float64(frames.Int64) / sum.WallSeconds
	}
	return sum, nil
}

// ClearSessions deletes the records of a scene, or every record when scene is empty.
func (s *Store) ClearSessions(scene string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE (? = '' OR scene = ?)", scene, scene)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
