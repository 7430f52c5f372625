package database

import sq "github.com/Masterminds/squirrel"

// PSQL билдер запросов с плейсхолдерами postgres.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	CalendarsTable = "calendars"
	EventsTable    = "events"
)
