package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleICS = "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nSUMMARY:Standup\r\nDTSTART:20240105T090000Z\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"

func newFetcher(googleURL, corsURL string, timeout time.Duration) *Fetcher {
	return NewFetcher(zap.NewNop().Sugar(), Options{
		GoogleRelayURL:   googleURL,
		CorsRelayURL:     corsURL,
		MinContentLength: 50,
		Timeout:          timeout,
	})
}

func requireImportError(t *testing.T, err error) *model.ImportError {
	t.Helper()
	var importErr *model.ImportError
	require.True(t, errors.As(err, &importErr), "expected ImportError, got %v", err)
	return importErr
}

func icsSession(url string) *model.ImportSession {
	return &model.ImportSession{ID: "s1", Source: model.SourceICS, FetchURL: url}
}

func TestFetchICS(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		_ = json.NewEncoder(w).Encode(map[string]string{"contents": sampleICS})
	}))
	defer srv.Close()

	payload, err := newFetcher("", srv.URL+"/get", time.Second).Fetch(context.Background(), icsSession("https://example.com/cal.ics?token=x"))
	require.NoError(t, err)
	assert.Equal(t, sampleICS, payload.ICS)
	assert.Nil(t, payload.Events)
	assert.Equal(t, "https://example.com/cal.ics?token=x", gotURL)
}

func TestFetchICS_TooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"contents": "BEGIN:VCALENDAR"})
	}))
	defer srv.Close()

	_, err := newFetcher("", srv.URL, time.Second).Fetch(context.Background(), icsSession("https://example.com/cal.ics"))
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindInvalidPayload, importErr.Kind)
	assert.Equal(t, msgInvalidPayload, importErr.Message)
}

func TestFetchICS_MissingContents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"http_code":404}}`))
	}))
	defer srv.Close()

	_, err := newFetcher("", srv.URL, time.Second).Fetch(context.Background(), icsSession("https://example.com/cal.ics"))
	assert.Equal(t, model.KindInvalidPayload, requireImportError(t, err).Kind)
}

func TestFetchICS_BadWrapper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := newFetcher("", srv.URL, time.Second).Fetch(context.Background(), icsSession("https://example.com/cal.ics"))
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindTransportFailure, importErr.Kind)
	assert.Equal(t, msgDecodeFailed, importErr.Message)
}

func TestFetchICS_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newFetcher("", srv.URL, time.Second).Fetch(context.Background(), icsSession("https://example.com/cal.ics"))
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindTransportFailure, importErr.Kind)
	assert.Equal(t, "failed to fetch calendar: 502 Bad Gateway", importErr.Message)
}

func TestFetchICS_Timeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	_, err := newFetcher("", srv.URL, 50*time.Millisecond).Fetch(context.Background(), icsSession("https://example.com/cal.ics"))
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindTransportFailure, importErr.Kind)
	assert.Contains(t, importErr.Message, "timed out")
}

func TestFetchICS_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newFetcher("", url, time.Second).Fetch(context.Background(), icsSession("https://example.com/cal.ics"))
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindTransportFailure, importErr.Kind)
	assert.Equal(t, msgFetchFailed, importErr.Message)
}

func TestFetchGoogle(t *testing.T) {
	var gotReq googleRelayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"events":[{"id":"e1","title":"Planning","start":"2024-01-05T09:00:00Z","end":"2024-01-05T10:00:00Z","allDay":false}]}`))
	}))
	defer srv.Close()

	session := &model.ImportSession{ID: "s1", Source: model.SourceGoogle, CalendarID: "abc@group.calendar.google.com"}
	payload, err := newFetcher(srv.URL, "", time.Second).Fetch(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, "abc@group.calendar.google.com", gotReq.CalendarID)
	require.Len(t, payload.Events, 1)
	assert.Equal(t, "e1", payload.Events[0].ExternalID)
	assert.Equal(t, model.SourceGoogle, payload.Events[0].Source)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), payload.Events[0].Start.UTC())
}

func TestFetchGoogle_EmptyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	session := &model.ImportSession{Source: model.SourceGoogle, CalendarID: "x"}
	payload, err := newFetcher(srv.URL, "", time.Second).Fetch(context.Background(), session)
	require.NoError(t, err)
	assert.Empty(t, payload.Events)
}

func TestFetchGoogle_RelayErrorIsVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Google Calendar API error: 404 - {\"error\":\"notFound\"}"}`))
	}))
	defer srv.Close()

	session := &model.ImportSession{Source: model.SourceGoogle, CalendarID: "missing"}
	_, err := newFetcher(srv.URL, "", time.Second).Fetch(context.Background(), session)
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindTransportFailure, importErr.Kind)
	assert.Equal(t, `Google Calendar API error: 404 - {"error":"notFound"}`, importErr.Message)
	assert.Equal(t, importErr.Message, importErr.Error())
}

func TestFetchGoogle_NullEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[null]}`))
	}))
	defer srv.Close()

	session := &model.ImportSession{Source: model.SourceGoogle, CalendarID: "x"}
	var err error
	assert.NotPanics(t, func() {
		_, err = newFetcher(srv.URL, "", time.Second).Fetch(context.Background(), session)
	})
	importErr := requireImportError(t, err)
	assert.Equal(t, model.KindInvalidPayload, importErr.Kind)
	assert.Equal(t, msgInvalidPayload, importErr.Message)
}

func TestFetchGoogle_EndBeforeStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[{"id":"e1","title":"Backwards","start":"2024-01-05T10:00:00Z","end":"2024-01-05T09:00:00Z","allDay":false}]}`))
	}))
	defer srv.Close()

	session := &model.ImportSession{Source: model.SourceGoogle, CalendarID: "x"}
	payload, err := newFetcher(srv.URL, "", time.Second).Fetch(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, payload.Events, 1)
	assert.Equal(t, payload.Events[0].Start, payload.Events[0].End)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/...(redacted)", redactURL("https://example.com/private/abc.ics?token=1"))
	assert.Equal(t, "...(redacted)", redactURL("nonsense"))
}
