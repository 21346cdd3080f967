package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Match operations

// InsertMatch records one match occurrence.
func (s *Store) InsertMatch(m *Match) error {
	query := `
		INSERT INTO matches (file, line_no, line_text, magic_text, detected_at)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := s.db.Exec(query,
		m.File,
		m.LineNo,
		m.LineText,
		m.MagicText,
		m.DetectedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match for %s: %w", m.File, err)
	}

	m.ID, _ = res.LastInsertId()
	return nil
}

// RecentMatches returns up to limit matches, newest first. If file is
// non-empty, only matches from that file are returned.
func (s *Store) RecentMatches(limit int, file string) ([]*Match, error) {
	query := `
		SELECT id, file, line_no, line_text, magic_text, detected_at
		FROM matches
	`
	args := []any{}
	if file != "" {
		query += ` WHERE file = ?`
		args = append(args, file)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}

// CountMatches returns the total number of recorded matches.
func (s *Store) CountMatches() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// LastMatch returns the most recently recorded match, or nil if none exist.
func (s *Store) LastMatch() (*Match, error) {
	row := s.db.QueryRow(`
		SELECT id, file, line_no, line_text, magic_text, detected_at
		FROM matches
		ORDER BY id DESC
		LIMIT 1
	`)

	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanMatch.
type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*Match, error) {
	var m Match
	var detectedAt string

	err := row.Scan(&m.ID, &m.File, &m.LineNo, &m.LineText, &m.MagicText, &detectedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}

	m.DetectedAt, err = time.Parse(time.RFC3339, detectedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detected_at: %w", err)
	}

	return &m, nil
}

// Session operations

// BeginSession records the start of a watch run and returns its ID.
func (s *Store) BeginSession(startedAt time.Time, dir, ext, magicText string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO sessions (started_at, dir, ext, magic_text)
		VALUES (?, ?, ?, ?)
	`, startedAt.Format(time.RFC3339), dir, ext, magicText)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session id: %w", err)
	}
	return id, nil
}

// EndSession marks a session as ended.
func (s *Store) EndSession(id int64, endedAt time.Time) error {
	_, err := s.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE id = ?
	`, endedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to end session %d: %w", id, err)
	}
	return nil
}

// LastSession returns the most recently started session, or nil if none
// have been recorded.
func (s *Store) LastSession() (*Session, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, ended_at, dir, ext, magic_text
		FROM sessions
		ORDER BY id DESC
		LIMIT 1
	`)

	var sess Session
	var startedAt string
	var endedAt sql.NullString

	err := row.Scan(&sess.ID, &startedAt, &endedAt, &sess.Dir, &sess.Ext, &sess.MagicText)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last session: %w", err)
	}

	sess.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if endedAt.Valid {
		t, err := time.Parse(time.RFC3339, endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ended_at: %w", err)
		}
		sess.EndedAt = &t
	}

	return &sess, nil
}

// FirstSessionStart returns the start time of the earliest recorded session.
// Returns the zero time if no sessions exist.
func (s *Store) FirstSessionStart() (time.Time, error) {
	var startedAt string
	err := s.db.QueryRow(`SELECT started_at FROM sessions ORDER BY id ASC LIMIT 1`).Scan(&startedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query first session: %w", err)
	}

	t, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse started_at: %w", err)
	}
	return t, nil
}
