package ics

import (
	"errors"
	"strings"
)

// ErrMalformed means the text does not look like iCalendar data at all.
var ErrMalformed = errors.New("ics: malformed calendar data")

const (
	beginEvent    = "BEGIN:VEVENT"
	endEvent      = "END:VEVENT"
	beginCalendar = "BEGIN:VCALENDAR"
)

// EventBlock holds the properties of one VEVENT.
// A key may repeat (EXDATE), Get returns the last occurrence.
type EventBlock struct {
	props map[string][]Property
}

func newEventBlock() EventBlock {
	return EventBlock{props: make(map[string][]Property)}
}

func (b EventBlock) add(p Property) {
	b.props[p.Key] = append(b.props[p.Key], p)
}

func (b EventBlock) Get(key string) (Property, bool) {
	ps := b.props[strings.ToUpper(key)]
	if len(ps) == 0 {
		return Property{}, false
	}
	return ps[len(ps)-1], true
}

func (b EventBlock) All(key string) []Property {
	return b.props[strings.ToUpper(key)]
}

func (b EventBlock) Value(key string) string {
	p, _ := b.Get(key)
	return p.Value
}

func (b EventBlock) Has(key string) bool {
	_, ok := b.Get(key)
	return ok
}

// Parse extracts every VEVENT that carries both SUMMARY and DTSTART.
// Blocks missing either are dropped silently. Components nested inside
// a VEVENT (VALARM and friends) are skipped.
func Parse(text string) ([]EventBlock, error) {
	lines := Unfold(text)

	recognized := false
	inEvent := false
	depth := 0
	current := EventBlock{}

	var blocks []EventBlock

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		upper := strings.ToUpper(line)

		switch {
		case upper == beginCalendar:
			recognized = true
			continue
		case upper == beginEvent:
			recognized = true
			inEvent = true
			depth = 0
			current = newEventBlock()
			continue
		case upper == endEvent:
			if inEvent && current.Has("SUMMARY") && current.Has("DTSTART") {
				blocks = append(blocks, current)
			}
			inEvent = false
			depth = 0
			continue
		}

		if !inEvent {
			continue
		}

		if strings.HasPrefix(upper, "BEGIN:") {
			depth++
			continue
		}
		if strings.HasPrefix(upper, "END:") {
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}

		if p, ok := parseProperty(line); ok {
			current.add(p)
		}
	}

	if !recognized {
		return nil, ErrMalformed
	}

	return blocks, nil
}
