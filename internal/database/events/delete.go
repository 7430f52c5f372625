package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-import/internal/database"
)

// DeleteStaleEvents removes calendar events whose external id is no longer in keep.
func (*Repository) DeleteStaleEvents(ctx context.Context, q database.Queryable, calendarID int64, keep []string) (int64, error) {
	qb := database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"calendar_id": calendarID})

	if len(keep) > 0 {
		qb = qb.Where(sq.NotEq{"external_id": keep})
	}

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return tag.RowsAffected(), nil
}
