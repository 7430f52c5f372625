package api

import (
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

const dateTimeFormat = time.RFC3339

type calendarResp struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Color          string               `json:"color"`
	URL            string               `json:"url,omitempty"`
	IsVisible      bool                 `json:"is_visible"`
	ExternalSource model.ExternalSource `json:"external_source"`
	ExternalID     string               `json:"external_id,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func mapToCalendarResp(c *model.Calendar) *calendarResp {
	return &calendarResp{
		ID:             c.ID,
		Name:           c.Name,
		Color:          model.ColorCode(c.Color),
		URL:            c.URL,
		IsVisible:      c.IsVisible,
		ExternalSource: c.ExternalSource,
		ExternalID:     c.ExternalID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type eventResp struct {
	ID             int64                 `json:"id"`
	CalendarID     *int64                `json:"calendar_id"`
	ExternalID     *string               `json:"external_id,omitempty"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	Location       string                `json:"location,omitempty"`
	StartTime      time.Time             `json:"start_time"`
	EndTime        time.Time             `json:"end_time"`
	AllDay         bool                  `json:"all_day"`
	ColorCode      string                `json:"color_code,omitempty"`
	ExternalSource *model.ExternalSource `json:"external_source,omitempty"`
	SyncStatus     model.SyncStatus      `json:"sync_status"`
}

func mapToEventResp(e *model.Event) *eventResp {
	return &eventResp{
		ID:             e.ID,
		CalendarID:     e.CalendarID,
		ExternalID:     e.ExternalID,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		AllDay:         e.AllDay,
		ColorCode:      e.ColorCode,
		ExternalSource: e.ExternalSource,
		SyncStatus:     e.SyncStatus,
	}
}
