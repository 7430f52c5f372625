package model

import "time"

// ImportSession carries everything one import attempt knows about its origin.
// It is created when the user starts an import and passed through every stage.
type ImportSession struct {
	ID         string
	UserID     string
	RawURL     string
	Source     ExternalSource
	CalendarID string
	FetchURL   string
	StartedAt  time.Time
}

type ImportRequest struct {
	URL   string
	Name  string
	Color string
}

type ImportPreview struct {
	Session *ImportSession
	Events  []*NormalizedEvent
}

type ImportResult struct {
	Calendar *Calendar
	Imported int
	Skipped  int
}
