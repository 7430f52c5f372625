package calendars

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

func (*Repository) GetCalendar(ctx context.Context, q database.Queryable, userID string, id int64) (*model.Calendar, error) {
	calendars, err := getCalendars(ctx, q, sq.Eq{"id": id, "user_id": userID})
	if err != nil {
		return nil, err
	}

	if len(calendars) == 0 {
		return nil, model.ErrNoRecord
	}

	return calendars[0], nil
}

// GetCalendarByOrigin finds the newest calendar the user imported from the given origin.
func (*Repository) GetCalendarByOrigin(ctx context.Context, q database.Queryable, userID string, source model.ExternalSource, externalID string) (*model.Calendar, error) {
	calendars, err := getCalendars(ctx, q, sq.Eq{
		"user_id":         userID,
		"external_source": source,
		"external_id":     externalID,
	})
	if err != nil {
		return nil, err
	}

	if len(calendars) == 0 {
		return nil, model.ErrNoRecord
	}

	return calendars[len(calendars)-1], nil
}

func (*Repository) GetUserCalendars(ctx context.Context, q database.Queryable, userID string) ([]*model.Calendar, error) {
	return getCalendars(ctx, q, sq.Eq{"user_id": userID})
}

func getCalendars(ctx context.Context, q database.Queryable, predicate interface{}) ([]*model.Calendar, error) {
	qb := baseQuery.
		Where(predicate).
		OrderBy("id")

	var dtos []*calendarDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Calendar, len(dtos))
	for i, d := range dtos {
		c, err := mapToCalendar(d)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}

	return res, nil
}
