package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/model"
	"google.golang.org/api/calendar/v3"
)

const googleDateLayout = "2006-01-02"

// FromGoogle maps Google Calendar API events. Recurrences are expected to be expanded already.
func (n *Normalizer) FromGoogle(items []*calendar.Event) *Batch {
	batch := &Batch{}

	for _, item := range items {
		if item == nil || item.Status == "cancelled" {
			continue
		}

		id := item.Id
		if id == "" {
			id = n.opts.NewID()
		}

		title := strings.TrimSpace(item.Summary)
		if title == "" {
			title = untitledGoogle
		}

		ev := &model.NormalizedEvent{
			ExternalID:  id,
			Title:       title,
			Description: item.Description,
			Location:    item.Location,
			Source:      model.SourceGoogle,
		}

		start, allDay, err := n.googleTime(item.Start)
		if err != nil {
			if n.opts.Strict {
				batch.warn("event %q dropped: start: %v", id, err)
				continue
			}
			batch.warn("event %q: start: %v, using current time", id, err)
			start = n.opts.Now()
		}
		ev.Start = start
		ev.AllDay = allDay

		ev.End = ev.Start.Add(defaultDuration)
		if item.End != nil {
			end, _, err := n.googleTime(item.End)
			if err != nil {
				batch.warn("event %q: end: %v, using default duration", id, err)
			} else if end.Before(ev.Start) {
				batch.warn("event %q: end before start, using default duration", id)
			} else {
				ev.End = end
			}
		}

		batch.Events = append(batch.Events, ev)
	}

	return batch
}

// googleTime picks dateTime over date, whichever is present first.
func (n *Normalizer) googleTime(dt *calendar.EventDateTime) (time.Time, bool, error) {
	if dt == nil {
		return time.Time{}, false, errEmptyValue
	}

	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("parse dateTime %q: %w", dt.DateTime, err)
		}
		return t, false, nil
	}

	if dt.Date != "" {
		t, err := time.ParseInLocation(googleDateLayout, dt.Date, n.opts.Location)
		if err != nil {
			return time.Time{}, true, fmt.Errorf("parse date %q: %w", dt.Date, err)
		}
		return t, true, nil
	}

	return time.Time{}, false, errEmptyValue
}
