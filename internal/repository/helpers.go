package repository

import "time"

// timeLayout has fixed-width fractions so stored values sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// nowUTC returns the current UTC time in the stored layout.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
