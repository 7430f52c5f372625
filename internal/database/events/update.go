package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-import/internal/database"
)

// UpdateCalendarColor repaints every event of the calendar.
func (*Repository) UpdateCalendarColor(ctx context.Context, q database.Queryable, calendarID int64, colorCode string) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		Set("color_code", colorCode).
		Where(sq.Eq{"calendar_id": calendarID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
