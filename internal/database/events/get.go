package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

// GetEvents returns the user's events overlapping [From, To).
func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"e.user_id": filter.UserID}).
		Where(sq.Lt{"e.start_time": filter.To}).
		Where(sq.GtOrEq{"e.end_time": filter.From}).
		OrderBy("e.start_time", "e.id")

	if filter.VisibleOnly {
		qb = qb.
			LeftJoin(database.CalendarsTable + " c on c.id = e.calendar_id").
			Where(sq.Or{sq.Eq{"e.calendar_id": nil}, sq.Eq{"c.is_visible": true}})
	}

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}
