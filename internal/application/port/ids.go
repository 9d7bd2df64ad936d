package port

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces unique identifiers for store entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// NewUUIDGenerator returns an IDGenerator backed by random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuid.NewString
}

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}
