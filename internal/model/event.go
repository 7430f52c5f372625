package model

import "time"

type SyncStatus string

const (
	SyncStatusLocal    SyncStatus = "local"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusConflict SyncStatus = "conflict"
	SyncStatusImported SyncStatus = "imported"
)

// NormalizedEvent is the provider independent shape every fetched event is mapped to.
type NormalizedEvent struct {
	ExternalID  string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	AllDay      bool           `json:"allDay"`
	Source      ExternalSource `json:"source,omitempty"`
}

type EventCreate struct {
	UserID         string
	CalendarID     *int64
	ExternalID     *string
	Title          string
	Description    string
	Location       string
	StartTime      time.Time
	EndTime        time.Time
	AllDay         bool
	ColorCode      string
	ExternalSource *ExternalSource
	SyncStatus     SyncStatus
}

type Event struct {
	ID int64
	EventCreate
}

type EventsFilter struct {
	UserID string
	From   time.Time
	To     time.Time
	// VisibleOnly drops events of hidden calendars, local events are always kept.
	VisibleOnly bool
}
