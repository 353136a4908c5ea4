package utils

import (
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseIntDefault returns def for empty, malformed or non-positive input.
func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// ParseID parses a positive path id.
func ParseID(v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseBoolPtr returns nil when v is empty or not a bool.
func ParseBoolPtr(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &b
}

// ParseDate reads YYYY-MM-DD as midnight UTC. Empty input yields def.
func ParseDate(v string, def time.Time) (time.Time, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseInLocation(DateLayout, v, time.UTC)
}

// Pagination clamps page/limit the same way for every list endpoint.
func Pagination(page, limit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}
