package domain

import "time"

// Plan is a membership offering.
type Plan struct {
	ID           int64
	Name         string
	Modalities   []string
	Price        float64
	DurationDays int
	Benefits     []string
	Active       bool
	CreatedAt    time.Time
}
