package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses an id taken from a path or body. The bool is false for
// malformed input so callers can answer 400 instead of 500.
func ParseUUID(value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ParseDate parses an optional YYYY-MM-DD query value.
func ParseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return nil, false
	}
	return &t, true
}
