package store

const schema = `
CREATE TABLE IF NOT EXISTS matches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file TEXT NOT NULL,
    line_no INTEGER NOT NULL,
    line_text TEXT NOT NULL,
    magic_text TEXT NOT NULL,
    detected_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    ended_at TIMESTAMP,
    dir TEXT NOT NULL,
    ext TEXT NOT NULL,
    magic_text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_matches_file ON matches(file);
CREATE INDEX IF NOT EXISTS idx_matches_detected ON matches(detected_at);
`
