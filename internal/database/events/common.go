package events

import "github.com/SergeyKozhin/calendar-import/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Postgres caps bind parameters per statement, batches are written in chunks.
const batchSize = 500

var columns = []string{
	"user_id",
	"calendar_id",
	"external_id",
	"title",
	"description",
	"location",
	"start_time",
	"end_time",
	"all_day",
	"color_code",
	"external_source",
	"sync_status",
}

var baseQuery = database.PSQL.
	Select(
		"e.id",
		"e.user_id",
		"e.calendar_id",
		"e.external_id",
		"e.title",
		"e.description",
		"e.location",
		"e.start_time",
		"e.end_time",
		"e.all_day",
		"e.color_code",
		"e.external_source",
		"e.sync_status",
	).
	From(database.EventsTable + " e")
