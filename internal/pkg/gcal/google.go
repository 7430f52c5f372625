package gcal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrNotConfigured = errors.New("google calendar credentials are not configured")

// Client lists events of public (or shared with the service account) Google calendars.
type Client struct {
	service *calendar.Service
}

// NewClient prefers a service account credentials file, falling back to a plain API key.
func NewClient(ctx context.Context, apiKey, credentialsPath string, opts ...option.ClientOption) (*Client, error) {
	switch {
	case credentialsPath != "":
		data, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("can't read google credentials: %w", err)
		}

		creds, err := google.CredentialsFromJSON(ctx, data, calendar.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("can't parse google credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	case apiKey != "":
		opts = append(opts, option.WithAPIKey(apiKey))
	default:
		return nil, ErrNotConfigured
	}

	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Calendar API: %w", err)
	}

	return &Client{service: service}, nil
}

// ListEvents returns single (recurrence expanded) events between from and to ordered by start.
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, to time.Time, limit int64) ([]*calendar.Event, error) {
	resp, err := c.service.Events.
		List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(limit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return resp.Items, nil
}
