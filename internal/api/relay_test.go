package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

type fakeGoogle struct {
	items []*calendar.Event
	err   error

	calendarID string
	from, to   time.Time
	limit      int64
}

func (f *fakeGoogle) ListEvents(_ context.Context, calendarID string, from, to time.Time, limit int64) ([]*calendar.Event, error) {
	f.calendarID = calendarID
	f.from = from
	f.to = to
	f.limit = limit
	return f.items, f.err
}

func assertCORS(t *testing.T, h http.Header) {
	t.Helper()

	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, h.Get("Access-Control-Allow-Headers"), "authorization")
	assert.Contains(t, h.Get("Access-Control-Allow-Headers"), "content-type")
}

func TestRelay_Preflight(t *testing.T) {
	ta := newTestApi(t, nil)

	rec := ta.do(http.MethodOptions, "/relay/google-calendar", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assertCORS(t, rec.Header())
}

func TestRelay_Events(t *testing.T) {
	google := &fakeGoogle{items: []*calendar.Event{
		{
			Id:      "g1",
			Summary: "Review",
			Start:   &calendar.EventDateTime{DateTime: "2024-01-05T09:00:00Z"},
			End:     &calendar.EventDateTime{DateTime: "2024-01-05T10:00:00Z"},
		},
		{
			Id:    "g2",
			Start: &calendar.EventDateTime{Date: "2024-01-06"},
			End:   &calendar.EventDateTime{Date: "2024-01-07"},
		},
	}}
	ta := newTestApi(t, google)

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":"team@example.com"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assertCORS(t, rec.Header())

	assert.Equal(t, "team@example.com", google.calendarID)
	assert.Equal(t, relayNow, google.from)
	assert.Equal(t, relayNow.Add(180*24*time.Hour), google.to)
	assert.Equal(t, int64(250), google.limit)

	events := decode(t, rec)["events"].([]interface{})
	require.Len(t, events, 2)

	first := events[0].(map[string]interface{})
	assert.Equal(t, "g1", first["id"])
	assert.Equal(t, "Review", first["title"])
	assert.Equal(t, "2024-01-05T10:00:00Z", first["end"])

	second := events[1].(map[string]interface{})
	assert.Equal(t, "Imported Event", second["title"])
	assert.Equal(t, true, second["allDay"])
}

func TestRelay_NoItems(t *testing.T) {
	ta := newTestApi(t, &fakeGoogle{})

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":"team@example.com"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[]}`, rec.Body.String())
}

func TestRelay_MissingCalendarID(t *testing.T) {
	ta := newTestApi(t, &fakeGoogle{})

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":""}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "calendarId is required", decode(t, rec)["error"])
	assertCORS(t, rec.Header())
}

func TestRelay_NotConfigured(t *testing.T) {
	ta := newTestApi(t, nil)

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":"team@example.com"}`, false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Google API key not configured", decode(t, rec)["error"])
}

func TestRelay_UpstreamError(t *testing.T) {
	ta := newTestApi(t, &fakeGoogle{err: &googleapi.Error{Code: http.StatusNotFound, Body: `{"error":"notFound"}`}})

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":"missing@example.com"}`, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `Google Calendar API error: 404 - {"error":"notFound"}`, decode(t, rec)["error"])
	assertCORS(t, rec.Header())
}

func TestRelay_InternalError(t *testing.T) {
	ta := newTestApi(t, &fakeGoogle{err: errors.New("dial tcp: i/o timeout")})

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":"team@example.com"}`, false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, "Internal server error", res["error"])
	assert.Equal(t, "dial tcp: i/o timeout", res["details"])
}

type panickingGoogle struct{}

func (panickingGoogle) ListEvents(context.Context, string, time.Time, time.Time, int64) ([]*calendar.Event, error) {
	panic("unexpected")
}

func TestRelay_Panic(t *testing.T) {
	ta := newTestApi(t, panickingGoogle{})

	rec := ta.do(http.MethodPost, "/relay/google-calendar", `{"calendarId":"team@example.com"}`, false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unexpected", decode(t, rec)["details"])
	assertCORS(t, rec.Header())
}
