package store

import "time"

// Match is one recorded occurrence of the magic text in a watched file.
type Match struct {
	ID         int64
	File       string
	LineNo     int
	LineText   string
	MagicText  string
	DetectedAt time.Time
}

// Session records the lifetime and parameters of one watch run.
type Session struct {
	ID        int64
	StartedAt time.Time
	EndedAt   *time.Time
	Dir       string
	Ext       string
	MagicText string
}
