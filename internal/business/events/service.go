package events

import (
	"context"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
}

type eventsRepository interface {
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
}

func NewService(db database.PGX, repo eventsRepository) *Service {
	return &Service{
		db:               db,
		eventsRepository: repo,
	}
}
