package repository

import (
	"database/sql"
	"time"
)

// nullableString maps "" to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseStoredTime parses an RFC3339 column, returning the zero time when the
// value is empty or malformed.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatStoredTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func stringOrEmpty(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return formatStoredTime(time.Now())
}
