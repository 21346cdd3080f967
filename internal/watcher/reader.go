package watcher

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Lines longer than this are a misuse of line-oriented log files, but
// they should not kill the scan.
const maxLineBytes = 1024 * 1024

// Match is one occurrence of the magic text in a watched file.
type Match struct {
	Path   string // absolute path of the file
	LineNo int    // 1-based absolute line number
	Line   string // full text of the matching line
}

// ReadNewLines opens path, reads its full current content, and returns
// the lines past the first offset lines. The file handle is released
// before returning, error or not.
//
// If the file holds offset lines or fewer (including a file truncated
// below its recorded offset), the result is zero lines and a nil error.
// A missing file surfaces as an fs.ErrNotExist-wrapped error so callers
// can tell a vanished file from a read failure.
func ReadNewLines(path string, offset int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	n := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if n >= offset {
			lines = append(lines, scanner.Text())
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return lines, nil
}

// FindMatches scans lines (the new content of path, starting just past
// offset) for text using a case-insensitive substring test and returns
// one Match per hit with its absolute 1-based line number.
func FindMatches(path string, lines []string, offset int, text string) []Match {
	needle := strings.ToLower(text)

	var matches []Match
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			matches = append(matches, Match{
				Path:   path,
				LineNo: offset + i + 1,
				Line:   line,
			})
		}
	}
	return matches
}
