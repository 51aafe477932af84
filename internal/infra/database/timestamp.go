package database

import (
	"database/sql"
	"time"
)

// Timestamps are stored as Unix nanoseconds in integer columns.

// ToColumn converts t for storage.
func ToColumn(t time.Time) int64 {
	return t.UnixNano()
}

// FromColumn converts a stored timestamp back to UTC time.
func FromColumn(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// FromNullColumn converts a nullable stored timestamp; NULL becomes nil.
func FromNullColumn(ns sql.NullInt64) *time.Time {
	if !ns.Valid {
		return nil
	}

	t := FromColumn(ns.Int64)

	return &t
}
