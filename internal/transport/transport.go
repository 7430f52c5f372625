package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/metrics"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"go.uber.org/zap"
)

const maxBodySize = 10 << 20

const (
	msgFetchFailed    = "failed to fetch calendar"
	msgDecodeFailed   = "failed to decode relay response"
	msgInvalidPayload = "invalid data received from calendar source"
)

// Payload is what one fetch produced: raw ICS text, or events the Google relay already normalized.
type Payload struct {
	ICS    string
	Events []*model.NormalizedEvent
}

type Options struct {
	GoogleRelayURL string
	CorsRelayURL   string
	// MinContentLength is the shortest relay content still considered a calendar.
	MinContentLength int
	Timeout          time.Duration
	Client           *http.Client
}

type Fetcher struct {
	client           *http.Client
	logger           *zap.SugaredLogger
	googleRelayURL   string
	corsRelayURL     string
	minContentLength int
	timeout          time.Duration
}

func NewFetcher(logger *zap.SugaredLogger, opts Options) *Fetcher {
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	return &Fetcher{
		client:           client,
		logger:           logger,
		googleRelayURL:   opts.GoogleRelayURL,
		corsRelayURL:     opts.CorsRelayURL,
		minContentLength: opts.MinContentLength,
		timeout:          opts.Timeout,
	}
}

// Fetch retrieves the calendar the session points at. Google goes through the
// backend relay, every other provider through the CORS relay.
func (f *Fetcher) Fetch(ctx context.Context, session *model.ImportSession) (*Payload, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		metrics.FetchDuration.WithLabelValues(string(session.Source)).Observe(time.Since(started).Seconds())
	}()

	if session.Source == model.SourceGoogle {
		f.logger.Infow("fetching google calendar", "session", session.ID, "calendar_id", session.CalendarID)
		return f.fetchGoogle(ctx, session.CalendarID)
	}

	f.logger.Infow("fetching ics calendar", "session", session.ID, "source", session.Source, "url", redactURL(session.FetchURL))
	return f.fetchICS(ctx, session.FetchURL)
}

func (f *Fetcher) transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return model.NewImportError(model.StageFetch, model.KindCancelled, "import was cancelled", err)
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return model.NewImportError(model.StageFetch, model.KindTransportFailure,
			fmt.Sprintf("%s: request timed out after %v", msgFetchFailed, f.timeout), err)
	default:
		return model.NewImportError(model.StageFetch, model.KindTransportFailure, msgFetchFailed, err)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func statusError(resp *http.Response) error {
	return model.NewImportError(model.StageFetch, model.KindTransportFailure,
		fmt.Sprintf("%s: %s", msgFetchFailed, resp.Status), nil)
}

// redactURL keeps scheme and host only, feed URLs often embed private tokens.
func redactURL(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return "...(redacted)"
	}

	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}

	return u[:i+3] + rest + "/...(redacted)"
}
