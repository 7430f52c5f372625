package calendars

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

func (s *Service) GetCalendars(ctx context.Context, userID string) ([]*model.Calendar, error) {
	calendars, err := s.calendarsRepository.GetUserCalendars(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("calendarsRepository.GetUserCalendars: %w", err)
	}

	return calendars, nil
}
