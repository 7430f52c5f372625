package calendars

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

func (*Repository) CreateCalendar(ctx context.Context, q database.Queryable, calendar *model.CalendarCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.CalendarsTable).
		Columns(
			"user_id",
			"name",
			"color_code",
			"url",
			"is_visible",
			"external_source",
			"external_id",
		).
		Values(
			calendar.UserID,
			calendar.Name,
			model.ColorCode(calendar.Color),
			calendar.URL,
			calendar.IsVisible,
			calendar.ExternalSource,
			calendar.ExternalID,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
