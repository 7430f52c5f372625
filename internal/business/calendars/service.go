package calendars

import (
	"context"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/gerow/go-color"
)

type Service struct {
	db                  database.PGX
	calendarsRepository calendarsRepository
	eventsRepository    eventsRepository
}

type calendarsRepository interface {
	GetCalendar(ctx context.Context, q database.Queryable, userID string, id int64) (*model.Calendar, error)
	GetUserCalendars(ctx context.Context, q database.Queryable, userID string) ([]*model.Calendar, error)
	UpdateVisibility(ctx context.Context, q database.Queryable, userID string, id int64, visible bool) error
	UpdateColor(ctx context.Context, q database.Queryable, userID string, id int64, c color.RGB) error
	DeleteCalendar(ctx context.Context, q database.Queryable, userID string, id int64) error
}

type eventsRepository interface {
	UpdateCalendarColor(ctx context.Context, q database.Queryable, calendarID int64, colorCode string) error
}

func NewService(db database.PGX, calendars calendarsRepository, events eventsRepository) *Service {
	return &Service{
		db:                  db,
		calendarsRepository: calendars,
		eventsRepository:    events,
	}
}
