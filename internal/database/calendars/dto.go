package calendars

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

type calendarDTO struct {
	ID             int64
	UserID         string
	Name           string
	ColorCode      string
	URL            string `db:"url"`
	IsVisible      bool
	ExternalSource string
	ExternalID     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func mapToCalendar(d *calendarDTO) (*model.Calendar, error) {
	colorRGB, err := model.ParseColor(d.ColorCode)
	if err != nil {
		return nil, fmt.Errorf("map color from %v: %w", d.ColorCode, err)
	}

	return &model.Calendar{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		CalendarCreate: model.CalendarCreate{
			UserID:         d.UserID,
			Name:           d.Name,
			Color:          colorRGB,
			URL:            d.URL,
			IsVisible:      d.IsVisible,
			ExternalSource: model.ExternalSource(d.ExternalSource),
			ExternalID:     d.ExternalID,
		},
	}, nil
}
