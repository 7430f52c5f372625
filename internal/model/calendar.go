package model

import (
	"time"

	"github.com/gerow/go-color"
)

type CalendarCreate struct {
	UserID         string
	Name           string
	Color          color.RGB
	URL            string
	IsVisible      bool
	ExternalSource ExternalSource
	ExternalID     string
}

type Calendar struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	CalendarCreate
}

type DedupPolicy string

const (
	// DedupSnapshot creates a fresh calendar on every import.
	DedupSnapshot DedupPolicy = "snapshot"
	// DedupUpsert reuses the calendar with the same origin and upserts its events by external id.
	DedupUpsert DedupPolicy = "upsert"
)

func ParseDedupPolicy(s string) (DedupPolicy, bool) {
	switch DedupPolicy(s) {
	case DedupSnapshot, DedupUpsert:
		return DedupPolicy(s), true
	}
	return "", false
}
