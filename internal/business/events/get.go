package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

// GetEvents lists the user's events in range, events of hidden calendars are left out.
func (s *Service) GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	if !filter.To.After(filter.From) {
		return nil, fmt.Errorf("empty range %v - %v", filter.From, filter.To)
	}

	filter.VisibleOnly = true

	events, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	return events, nil
}
