package gcal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), "test-key", "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	return client
}

func TestListEvents(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 6, 0)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/team@example.com/events", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "2024-01-01T00:00:00Z", q.Get("timeMin"))
		assert.Equal(t, "2024-07-01T00:00:00Z", q.Get("timeMax"))
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, "startTime", q.Get("orderBy"))
		assert.Equal(t, "250", q.Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"g1","summary":"Review","start":{"dateTime":"2024-01-05T09:00:00Z"}}]}`))
	})

	items, err := client.ListEvents(context.Background(), "team@example.com", from, to, 250)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "g1", items[0].Id)
	assert.Equal(t, "2024-01-05T09:00:00Z", items[0].Start.DateTime)
}

func TestListEvents_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	})

	_, err := client.ListEvents(context.Background(), "missing", time.Now(), time.Now().Add(time.Hour), 250)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, "Not Found", apiErr.Body)
}

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClient_MissingCredentialsFile(t *testing.T) {
	_, err := NewClient(context.Background(), "", "/nonexistent/credentials.json")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}
