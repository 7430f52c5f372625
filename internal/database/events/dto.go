package events

import (
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

type eventDTO struct {
	ID             int64
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
	ExternalSource *string
	SyncStatus     string
}

func mapToEvent(dto *eventDTO) *model.Event {
	var source *model.ExternalSource
	if dto.ExternalSource != nil {
		s := model.ExternalSource(*dto.ExternalSource)
		source = &s
	}

	return &model.Event{
		ID: dto.ID,
		EventCreate: model.EventCreate{
			UserID:         dto.UserID,
			CalendarID:     dto.CalendarID,
			ExternalID:     dto.ExternalID,
			Title:          dto.Title,
			Description:    dto.Description,
			Location:       dto.Location,
			StartTime:      dto.StartTime,
			EndTime:        dto.EndTime,
			AllDay:         dto.AllDay,
			ColorCode:      dto.ColorCode,
			ExternalSource: source,
			SyncStatus:     model.SyncStatus(dto.SyncStatus),
		},
	}
}

func values(e *model.EventCreate) []interface{} {
	var source *string
	if e.ExternalSource != nil {
		s := string(*e.ExternalSource)
		source = &s
	}

	return []interface{}{
		e.UserID,
		e.CalendarID,
		e.ExternalID,
		e.Title,
		e.Description,
		e.Location,
		e.StartTime,
		e.EndTime,
		e.AllDay,
		e.ColorCode,
		source,
		string(e.SyncStatus),
	}
}
