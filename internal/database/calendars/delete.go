package calendars

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

// DeleteCalendar removes the calendar, its events go with it through the foreign key cascade.
func (*Repository) DeleteCalendar(ctx context.Context, q database.Queryable, userID string, id int64) error {
	qb := database.PSQL.
		Delete(database.CalendarsTable).
		Where(sq.Eq{"id": id, "user_id": userID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
