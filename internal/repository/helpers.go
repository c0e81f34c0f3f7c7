package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableString stores an empty string as SQL NULL, for optional foreign keys.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseTimestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	c, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	u, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return c, u, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// encodeStrings stores a string list as a JSON array. A nil list becomes "[]".
func encodeStrings(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkAffected turns an UPDATE or DELETE that touched no row into ErrNotFound.
func checkAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
