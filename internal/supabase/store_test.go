package supabase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New(`(23505) duplicate key value violates unique constraint "reactions_post_id_user_id_key"`)))
	assert.True(t, isUniqueViolation(errors.New("duplicate key value")))
	assert.False(t, isUniqueViolation(errors.New("(PGRST301) JWT expired")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestParseTimestamp(t *testing.T) {
	got, err := parseTimestamp("2025-06-15T14:30:00.123456+00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 15, 14, 30, 0, 123456000, time.UTC), got.UTC())

	got, err = parseTimestamp("2025-06-15T14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC), got)

	_, err = parseTimestamp("yesterday")
	assert.Error(t, err)
}
