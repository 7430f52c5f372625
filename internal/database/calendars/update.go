package calendars

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/gerow/go-color"
)

func (*Repository) UpdateVisibility(ctx context.Context, q database.Queryable, userID string, id int64, visible bool) error {
	return update(ctx, q, userID, id, map[string]interface{}{"is_visible": visible})
}

func (*Repository) UpdateColor(ctx context.Context, q database.Queryable, userID string, id int64, c color.RGB) error {
	return update(ctx, q, userID, id, map[string]interface{}{"color_code": model.ColorCode(c)})
}

// Touch bumps updated_at, used when an import is merged into an existing calendar.
func (*Repository) Touch(ctx context.Context, q database.Queryable, userID string, id int64) error {
	return update(ctx, q, userID, id, map[string]interface{}{})
}

func update(ctx context.Context, q database.Queryable, userID string, id int64, set map[string]interface{}) error {
	qb := database.PSQL.
		Update(database.CalendarsTable).
		SetMap(set).
		Set("updated_at", sq.Expr("now()")).
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
