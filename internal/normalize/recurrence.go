package normalize

import (
	"strings"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/ics"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/teambition/rrule-go"
)

// expand returns the occurrences of a recurring master inside the import window.
// The master itself is not part of the result.
func (n *Normalizer) expand(b ics.EventBlock, master *model.NormalizedEvent, batch *Batch) []*model.NormalizedEvent {
	opt, err := rrule.StrToROption(b.Value("RRULE"))
	if err != nil {
		batch.warn("event %q: parse rrule %q: %v", master.ExternalID, b.Value("RRULE"), err)
		return nil
	}
	opt.Dtstart = master.Start

	from := n.opts.Now()
	to := from.Add(n.opts.Window)
	rebase(opt, from)

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		batch.warn("event %q: make rule: %v", master.ExternalID, err)
		return nil
	}

	excluded := n.exceptions(b)
	duration := master.End.Sub(master.Start)

	var res []*model.NormalizedEvent
	next := rule.Iterator()
	for scanned := 0; ; scanned++ {
		at, ok := next()
		if !ok || at.After(to) {
			break
		}
		if scanned >= maxScan {
			batch.warn("event %q: recurrence scan stopped after %d candidates", master.ExternalID, maxScan)
			break
		}
		if at.Before(from) {
			continue
		}
		if len(res) >= n.opts.MaxRecurrences {
			batch.warn("event %q: recurrence truncated at %d occurrences", master.ExternalID, n.opts.MaxRecurrences)
			break
		}
		if at.Equal(master.Start) {
			continue
		}
		if _, ok := excluded[at.Unix()]; ok {
			continue
		}

		occ := *master
		occ.ExternalID = occurrenceKey(master.ExternalID, at)
		occ.Start = at
		occ.End = at.Add(duration)
		res = append(res, &occ)
	}

	return res
}

// maxScan bounds the candidates walked for a single rule.
const maxScan = 1 << 20

// rebase moves the start of an open sub-daily rule to the last grid point
// before from. COUNT rules keep their start since the count runs from it.
func rebase(opt *rrule.ROption, from time.Time) {
	var unit time.Duration
	switch opt.Freq {
	case rrule.HOURLY:
		unit = time.Hour
	case rrule.MINUTELY:
		unit = time.Minute
	case rrule.SECONDLY:
		unit = time.Second
	default:
		return
	}
	if opt.Count > 0 || !opt.Dtstart.Before(from) {
		return
	}

	interval := opt.Interval
	if interval < 1 {
		interval = 1
	}
	step := unit * time.Duration(interval)
	opt.Dtstart = opt.Dtstart.Add(from.Sub(opt.Dtstart) / step * step)
}

func (n *Normalizer) exceptions(b ics.EventBlock) map[int64]struct{} {
	res := make(map[int64]struct{})

	for _, p := range b.All("EXDATE") {
		for _, v := range strings.Split(p.Value, ",") {
			t, _, err := DecodeDateTime(ics.Property{Key: p.Key, Params: p.Params, Value: v}, n.opts.Location)
			if err != nil {
				continue
			}
			res[t.Unix()] = struct{}{}
		}
	}

	return res
}
