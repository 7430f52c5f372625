package classifier

import (
	"net/url"
	"strings"

	"github.com/SergeyKozhin/calendar-import/internal/model"
)

const (
	googleHost        = "calendar.google.com"
	outlookLiveHost   = "outlook.live.com"
	outlookOfficeHost = "outlook.office365.com"
	icloudHost        = "icloud.com"
)

type Result struct {
	Source model.ExternalSource
	// CalendarID is only set for google, it is what the relay is asked for.
	CalendarID string
	FetchURL   string
	// Ambiguous reports that nothing matched and the generic ics path was chosen.
	Ambiguous bool
}

// Classify never fails: anything unrecognized is treated as a plain ICS feed.
func Classify(raw string) Result {
	input := rewriteWebcal(strings.TrimSpace(raw))
	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, googleHost):
		return Result{
			Source:     model.SourceGoogle,
			CalendarID: googleCalendarID(input),
			FetchURL:   input,
		}
	case strings.Contains(lower, outlookLiveHost), strings.Contains(lower, outlookOfficeHost):
		return Result{
			Source:   model.SourceOutlook,
			FetchURL: outlookFetchURL(input),
		}
	case strings.Contains(lower, icloudHost):
		return Result{
			Source:   model.SourceICloud,
			FetchURL: input,
		}
	default:
		return Result{
			Source:    model.SourceICS,
			FetchURL:  input,
			Ambiguous: true,
		}
	}
}

func rewriteWebcal(s string) string {
	if len(s) >= len("webcal://") && strings.EqualFold(s[:len("webcal://")], "webcal://") {
		return "https://" + s[len("webcal://"):]
	}
	return s
}

func outlookFetchURL(s string) string {
	if strings.HasSuffix(strings.ToLower(s), ".ics") {
		return s
	}

	sep := "?"
	if strings.Contains(s, "?") {
		sep = "&"
	}
	return s + sep + "format=ics"
}

func googleCalendarID(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}

	u, err := url.Parse(s)
	if err == nil {
		if src := u.Query().Get("src"); src != "" && strings.Contains(u.Path, "embed") {
			return src
		}
	}

	if i := strings.Index(s, "/calendar/ical/"); i >= 0 {
		rest := s[i+len("/calendar/ical/"):]
		if j := strings.IndexAny(rest, "/?#"); j >= 0 {
			rest = rest[:j]
		}
		if id := unescape(rest); id != "" {
			return id
		}
	}

	if i := strings.Index(s, "calendar/"); i >= 0 {
		rest := s[i+len("calendar/"):]
		if j := strings.IndexAny(rest, "?#"); j >= 0 {
			rest = rest[:j]
		}

		segments := strings.Split(rest, "/")
		for k := len(segments) - 1; k >= 0; k-- {
			if segments[k] != "" {
				return unescape(segments[k])
			}
		}
	}

	return s
}

func unescape(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}
