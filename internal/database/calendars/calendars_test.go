package calendars

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyKozhin/calendar-import/internal/database/dbtest"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/gerow/go-color"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCalendar(t *testing.T) {
	rec := dbtest.NewRecorder()
	rec.Rows = []interface{}{int64(7)}

	c := color.RGB{R: 1, G: 0, B: 0}
	id, err := NewRepository().CreateCalendar(context.Background(), rec, &model.CalendarCreate{
		UserID:         "u1",
		Name:           "Google Calendar (team)",
		Color:          c,
		URL:            "team@example.com",
		IsVisible:      true,
		ExternalSource: model.SourceGoogle,
		ExternalID:     "team@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	require.Len(t, rec.Queries, 1)
	q := rec.Queries[0]
	assert.Contains(t, q.SQL, "INSERT INTO calendars")
	assert.Contains(t, q.SQL, "returning id")
	assert.Equal(t, []interface{}{
		"u1",
		"Google Calendar (team)",
		"#ff0000",
		"team@example.com",
		true,
		model.SourceGoogle,
		"team@example.com",
	}, q.Args)
}

func TestGetCalendar(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		rec := dbtest.NewRecorder()
		rec.Rows = []interface{}{[]*calendarDTO{{ID: 3, UserID: "u1", Name: "Work", ColorCode: "#ff0000", ExternalSource: "ics"}}}

		cal, err := NewRepository().GetCalendar(context.Background(), rec, "u1", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), cal.ID)
		assert.Equal(t, model.SourceICS, cal.ExternalSource)
		assert.Equal(t, "Work", cal.Name)
		assert.Contains(t, rec.Queries[0].SQL, "FROM calendars")
	})

	t.Run("not found", func(t *testing.T) {
		rec := dbtest.NewRecorder()

		_, err := NewRepository().GetCalendar(context.Background(), rec, "u1", 3)
		assert.ErrorIs(t, err, model.ErrNoRecord)
	})

	t.Run("bad color", func(t *testing.T) {
		rec := dbtest.NewRecorder()
		rec.Rows = []interface{}{[]*calendarDTO{{ID: 3, ColorCode: "not a color"}}}

		_, err := NewRepository().GetCalendar(context.Background(), rec, "u1", 3)
		assert.Error(t, err)
	})

	t.Run("db error", func(t *testing.T) {
		rec := dbtest.NewRecorder()
		rec.Err = errors.New("boom")

		_, err := NewRepository().GetCalendar(context.Background(), rec, "u1", 3)
		assert.ErrorContains(t, err, "boom")
	})
}

func TestGetCalendarByOriginReturnsNewest(t *testing.T) {
	rec := dbtest.NewRecorder()
	rec.Rows = []interface{}{[]*calendarDTO{
		{ID: 1, ColorCode: "#000000", ExternalSource: "outlook"},
		{ID: 4, ColorCode: "#000000", ExternalSource: "outlook"},
	}}

	cal, err := NewRepository().GetCalendarByOrigin(context.Background(), rec, "u1", model.SourceOutlook, "https://outlook.live.com/cal.ics")
	require.NoError(t, err)
	assert.Equal(t, int64(4), cal.ID)
	assert.Contains(t, rec.Queries[0].Args, "https://outlook.live.com/cal.ics")
}

func TestUpdate(t *testing.T) {
	repo := NewRepository()

	t.Run("visibility", func(t *testing.T) {
		rec := dbtest.NewRecorder()
		rec.Tag = pgconn.CommandTag("UPDATE 1")

		require.NoError(t, repo.UpdateVisibility(context.Background(), rec, "u1", 2, false))
		assert.Contains(t, rec.Queries[0].SQL, "UPDATE calendars SET is_visible = $1, updated_at = now()")
	})

	t.Run("color", func(t *testing.T) {
		rec := dbtest.NewRecorder()
		rec.Tag = pgconn.CommandTag("UPDATE 1")

		c := color.RGB{R: 0, G: 0, B: 1}
		require.NoError(t, repo.UpdateColor(context.Background(), rec, "u1", 2, c))
		assert.Equal(t, "#0000ff", rec.Queries[0].Args[0])
	})

	t.Run("missing row", func(t *testing.T) {
		rec := dbtest.NewRecorder()
		rec.Tag = pgconn.CommandTag("UPDATE 0")

		assert.ErrorIs(t, repo.Touch(context.Background(), rec, "u1", 2), model.ErrNoRecord)
	})
}

func TestDeleteCalendar(t *testing.T) {
	rec := dbtest.NewRecorder()
	rec.Tag = pgconn.CommandTag("DELETE 1")

	require.NoError(t, NewRepository().DeleteCalendar(context.Background(), rec, "u1", 5))
	assert.Contains(t, rec.Queries[0].SQL, "DELETE FROM calendars")

	rec.Tag = pgconn.CommandTag("DELETE 0")
	assert.ErrorIs(t, NewRepository().DeleteCalendar(context.Background(), rec, "u1", 5), model.ErrNoRecord)
}
