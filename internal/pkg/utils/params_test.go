package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 20, ParseIntDefault("", 20))
	assert.Equal(t, 20, ParseIntDefault("abc", 20))
	assert.Equal(t, 20, ParseIntDefault("-3", 20))
	assert.Equal(t, 5, ParseIntDefault("5", 20))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = ParseID("0")
	assert.False(t, ok)
	_, ok = ParseID("x")
	assert.False(t, ok)
}

func TestParseBoolPtr(t *testing.T) {
	assert.Nil(t, ParseBoolPtr(""))
	assert.Nil(t, ParseBoolPtr("maybe"))
	require.NotNil(t, ParseBoolPtr("false"))
	assert.False(t, *ParseBoolPtr("false"))
}

func TestParseDate(t *testing.T) {
	def := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = ParseDate("2026-03-15", def)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("15.03.2026", def)
	assert.Error(t, err)
}

func TestPagination(t *testing.T) {
	page, limit, offset := Pagination(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	_, _, offset = Pagination(3, 10)
	assert.Equal(t, 20, offset)
}
