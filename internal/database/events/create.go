package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
)

// CreateEvents inserts the batch and returns the number of written rows.
func (*Repository) CreateEvents(ctx context.Context, q database.Queryable, events []*model.EventCreate) (int64, error) {
	return insert(ctx, q, events, "")
}

// UpsertEvents inserts the batch, rows with a known (calendar_id, external_id) are updated in place.
func (*Repository) UpsertEvents(ctx context.Context, q database.Queryable, events []*model.EventCreate) (int64, error) {
	return insert(ctx, q, events, `ON CONFLICT (calendar_id, external_id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		location = EXCLUDED.location,
		start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		all_day = EXCLUDED.all_day,
		color_code = EXCLUDED.color_code,
		sync_status = EXCLUDED.sync_status`)
}

func insert(ctx context.Context, q database.Queryable, events []*model.EventCreate, suffix string) (int64, error) {
	var total int64

	for start := 0; start < len(events); start += batchSize {
		end := start + batchSize
		if end > len(events) {
			end = len(events)
		}

		qb := database.PSQL.
			Insert(database.EventsTable).
			Columns(columns...)

		for _, e := range events[start:end] {
			qb = qb.Values(values(e)...)
		}

		if suffix != "" {
			qb = qb.Suffix(suffix)
		}

		tag, err := q.Exec(ctx, qb)
		if err != nil {
			return total, fmt.Errorf("SQL request: %w", err)
		}
		total += tag.RowsAffected()
	}

	return total, nil
}
