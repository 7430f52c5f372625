package calendars

import (
	"github.com/SergeyKozhin/calendar-import/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"user_id",
		"name",
		"color_code",
		"url",
		"is_visible",
		"external_source",
		"external_id",
		"created_at",
		"updated_at",
	).
	From(database.CalendarsTable)
