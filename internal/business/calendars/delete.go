package calendars

import (
	"context"
	"fmt"
)

func (s *Service) DeleteCalendar(ctx context.Context, userID string, id int64) error {
	if err := s.calendarsRepository.DeleteCalendar(ctx, s.db, userID, id); err != nil {
		return fmt.Errorf("calendarsRepository.DeleteCalendar: %w", err)
	}

	return nil
}
