package service

import "time"

const (
	openAttempts   = 5
	archiveTimeout = 30 * time.Second
)

// Settings are the protocol parameters shared by the attendance services.
type Settings struct {
	BucketWidth time.Duration
	MaxLifetime time.Duration
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
