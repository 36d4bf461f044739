package domain

import "time"

// CheckIn records a student entering the gym.
type CheckIn struct {
	ID           int64
	StudentID    int64
	At           time.Time
	Note         *string
	RegisteredBy *int64
}
