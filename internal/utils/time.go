package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date in ISO 8601 format (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate formats a time as an ISO 8601 calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTimestamp formats a time as RFC 3339 for display and logs.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
