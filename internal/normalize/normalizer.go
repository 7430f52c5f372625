package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/ics"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

const (
	defaultDuration = time.Hour

	untitledICS    = "Untitled Event"
	untitledGoogle = "Imported Event"
)

type Options struct {
	// Location is used for floating ICS times and all-day dates.
	Location *time.Location
	// Window bounds recurrence expansion, starting at Now.
	Window         time.Duration
	MaxRecurrences int
	// Strict drops events whose dates cannot be decoded instead of moving them to Now.
	Strict bool
	Now    func() time.Time
	NewID  func() string
}

type Normalizer struct {
	opts Options
}

// Batch is a normalized set of events plus everything that was silently repaired on the way.
type Batch struct {
	Events   []*model.NormalizedEvent
	Warnings *multierror.Error
}

func (b *Batch) warn(format string, args ...interface{}) {
	b.Warnings = multierror.Append(b.Warnings, fmt.Errorf(format, args...))
}

func New(opts Options) *Normalizer {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.MaxRecurrences <= 0 {
		opts.MaxRecurrences = 250
	}

	return &Normalizer{opts: opts}
}

// FromICS maps parsed VEVENT blocks onto normalized events.
func (n *Normalizer) FromICS(blocks []ics.EventBlock, source model.ExternalSource) *Batch {
	batch := &Batch{}
	set := newEventSet()

	var overrides []ics.EventBlock

	for _, b := range blocks {
		if b.Has("RECURRENCE-ID") {
			overrides = append(overrides, b)
			continue
		}

		ev, ok := n.icsEvent(b, source, batch)
		if !ok {
			continue
		}
		set.add(occurrenceKey(ev.ExternalID, ev.Start), ev)

		if b.Has("RRULE") {
			for _, occ := range n.expand(b, ev, batch) {
				set.add(occ.ExternalID, occ)
			}
		}
	}

	for _, b := range overrides {
		ev, ok := n.icsEvent(b, source, batch)
		if !ok {
			continue
		}

		recurrenceID, _ := b.Get("RECURRENCE-ID")
		at, _, err := DecodeDateTime(recurrenceID, n.opts.Location)
		if err != nil {
			batch.warn("event %q: recurrence id: %v", ev.ExternalID, err)
			at = ev.Start
		}

		key := occurrenceKey(ev.ExternalID, at)
		ev.ExternalID = key
		set.replace(key, ev)
	}

	batch.Events = set.events
	return batch
}

func (n *Normalizer) icsEvent(b ics.EventBlock, source model.ExternalSource, batch *Batch) (*model.NormalizedEvent, bool) {
	id := strings.TrimSpace(b.Value("UID"))
	if id == "" {
		id = n.opts.NewID()
	}

	title := strings.TrimSpace(unescapeText(b.Value("SUMMARY")))
	if title == "" {
		title = untitledICS
	}

	ev := &model.NormalizedEvent{
		ExternalID:  id,
		Title:       title,
		Description: strings.TrimSpace(unescapeText(b.Value("DESCRIPTION"))),
		Location:    strings.TrimSpace(unescapeText(b.Value("LOCATION"))),
		Source:      source,
	}

	startProp, _ := b.Get("DTSTART")
	start, allDay, err := DecodeDateTime(startProp, n.opts.Location)
	if err != nil {
		if n.opts.Strict {
			batch.warn("event %q dropped: start: %v", id, err)
			return nil, false
		}
		batch.warn("event %q: start: %v, using current time", id, err)
		start = n.opts.Now()
	}
	ev.Start = start
	ev.AllDay = allDay

	ev.End = ev.Start.Add(defaultDuration)
	switch {
	case b.Has("DTEND"):
		endProp, _ := b.Get("DTEND")
		end, _, err := DecodeDateTime(endProp, n.opts.Location)
		if err != nil {
			if n.opts.Strict {
				batch.warn("event %q dropped: end: %v", id, err)
				return nil, false
			}
			batch.warn("event %q: end: %v, using default duration", id, err)
			break
		}
		ev.End = end
	case b.Has("DURATION"):
		d, err := parseDuration(b.Value("DURATION"))
		if err != nil {
			batch.warn("event %q: %v, using default duration", id, err)
			break
		}
		ev.End = ev.Start.Add(d)
	}

	if ev.End.Before(ev.Start) {
		batch.warn("event %q: end before start, using default duration", id)
		ev.End = ev.Start.Add(defaultDuration)
	}

	return ev, true
}

func occurrenceKey(uid string, at time.Time) string {
	return fmt.Sprintf("%s_%d", uid, at.Unix())
}

// eventSet keeps events in insertion order and lets a later event take over the slot of an earlier one.
type eventSet struct {
	events []*model.NormalizedEvent
	index  map[string]int
}

func newEventSet() *eventSet {
	return &eventSet{index: make(map[string]int)}
}

func (s *eventSet) add(key string, ev *model.NormalizedEvent) {
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = len(s.events)
	s.events = append(s.events, ev)
}

// replace swaps the event registered under key, the original external id is kept.
func (s *eventSet) replace(key string, ev *model.NormalizedEvent) {
	pos, ok := s.index[key]
	if !ok {
		s.index[key] = len(s.events)
		s.events = append(s.events, ev)
		return
	}

	ev.ExternalID = s.events[pos].ExternalID
	s.events[pos] = ev
}
