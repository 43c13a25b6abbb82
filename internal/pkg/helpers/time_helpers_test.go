package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	deadline, err := ParseDeadline("2025-12-31 23:59:59")
	require.NoError(t, err)
	assert.Equal(t, 2025, deadline.Year())
	assert.Equal(t, time.December, deadline.Month())
	assert.Equal(t, 23, deadline.Hour())
}

func TestParseDeadlineRejectsOtherFormats(t *testing.T) {
	for _, value := range []string{
		"2025-12-31",
		"2025/12/31 23:59:59",
		"31-12-2025 23:59:59",
		"2025-12-31T23:59:59Z",
		"",
	} {
		_, err := ParseDeadline(value)
		assert.Error(t, err, "value %q should not parse", value)
	}
}

func TestFormatDeadlineRoundTrip(t *testing.T) {
	original := "2026-06-30 12:00:00"
	parsed, err := ParseDeadline(original)
	require.NoError(t, err)
	assert.Equal(t, original, FormatDeadline(parsed))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
}
