package calendars

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

func (s *Service) SetVisibility(ctx context.Context, userID string, id int64, visible bool) (*model.Calendar, error) {
	if err := s.calendarsRepository.UpdateVisibility(ctx, s.db, userID, id, visible); err != nil {
		return nil, fmt.Errorf("calendarsRepository.UpdateVisibility: %w", err)
	}

	calendar, err := s.calendarsRepository.GetCalendar(ctx, s.db, userID, id)
	if err != nil {
		return nil, fmt.Errorf("calendarsRepository.GetCalendar: %w", err)
	}

	return calendar, nil
}

// SetColor recolors the calendar and every event imported into it.
func (s *Service) SetColor(ctx context.Context, userID string, id int64, code string) (*model.Calendar, error) {
	c, err := model.ParseColor(code)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.calendarsRepository.UpdateColor(ctx, tx, userID, id, c); err != nil {
		return nil, fmt.Errorf("calendarsRepository.UpdateColor: %w", err)
	}

	if err := s.eventsRepository.UpdateCalendarColor(ctx, tx, id, model.ColorCode(c)); err != nil {
		return nil, fmt.Errorf("eventsRepository.UpdateCalendarColor: %w", err)
	}

	calendar, err := s.calendarsRepository.GetCalendar(ctx, tx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("calendarsRepository.GetCalendar: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return calendar, nil
}
