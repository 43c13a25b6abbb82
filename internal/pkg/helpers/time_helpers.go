package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DeadlineLayout is the timestamp format stored in system_config values
// such as the submission deadline.
const DeadlineLayout = "2006-01-02 15:04:05"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDeadline parses a deadline value in the DeadlineLayout format.
func ParseDeadline(value string) (time.Time, error) {
	return time.Parse(DeadlineLayout, value)
}

// FormatDeadline renders a time in the DeadlineLayout format.
func FormatDeadline(t time.Time) string {
	return t.Format(DeadlineLayout)
}
