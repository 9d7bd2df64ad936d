package entity

import "time"

// Millis is a Unix timestamp in milliseconds.
// Persisted documents store every timestamp in this form.
type Millis int64

// MillisFrom converts a wall-clock time into Millis.
func MillisFrom(t time.Time) Millis {
	if t.IsZero() {
		return 0
	}
	return Millis(t.UnixMilli())
}

// Time returns the timestamp as a time.Time in local time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// IsZero reports whether the timestamp is unset.
func (m Millis) IsZero() bool {
	return m == 0
}
