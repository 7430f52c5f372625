package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyKozhin/calendar-import/internal/ics"
)

var errEmptyValue = errors.New("empty value")

// DecodeDateTime decodes an ICS DATE or DATE-TIME value.
// Values without a time part, or with VALUE=DATE, are all-day. Absent time
// components default to zero. A Z suffix means UTC, a loadable TZID is honored,
// everything else is read in loc.
func DecodeDateTime(p ics.Property, loc *time.Location) (time.Time, bool, error) {
	v := strings.TrimSpace(p.Value)
	if v == "" {
		return time.Time{}, false, errEmptyValue
	}

	allDay := strings.EqualFold(p.Param("VALUE"), "DATE") || !strings.ContainsAny(v, "Tt")

	datePart, timePart, _ := strings.Cut(strings.ToUpper(v), "T")
	utc := strings.HasSuffix(timePart, "Z") || strings.HasSuffix(datePart, "Z")
	datePart = strings.TrimSuffix(datePart, "Z")
	timePart = strings.TrimSuffix(timePart, "Z")

	if len(datePart) != 8 {
		return time.Time{}, allDay, fmt.Errorf("invalid date %q", v)
	}

	year, err := atoi(datePart[0:4])
	if err != nil {
		return time.Time{}, allDay, fmt.Errorf("invalid year in %q: %w", v, err)
	}
	month, err := atoi(datePart[4:6])
	if err != nil {
		return time.Time{}, allDay, fmt.Errorf("invalid month in %q: %w", v, err)
	}
	day, err := atoi(datePart[6:8])
	if err != nil {
		return time.Time{}, allDay, fmt.Errorf("invalid day in %q: %w", v, err)
	}

	var clock [3]int
	if !allDay {
		for i := 0; i < 3; i++ {
			field := "00"
			if len(timePart) >= 2*i+2 {
				field = timePart[2*i : 2*i+2]
			}
			clock[i], err = atoi(field)
			if err != nil {
				return time.Time{}, allDay, fmt.Errorf("invalid time in %q: %w", v, err)
			}
		}
	}

	location := loc
	switch {
	case utc:
		location = time.UTC
	case p.Param("TZID") != "" && !allDay:
		if l, err := time.LoadLocation(p.Param("TZID")); err == nil {
			location = l
		}
	}

	// fields are range checked in UTC, DST gaps in location must not fail the check
	check := time.Date(year, time.Month(month), day, clock[0], clock[1], clock[2], 0, time.UTC)
	if check.Year() != year || int(check.Month()) != month || check.Day() != day ||
		check.Hour() != clock[0] || check.Minute() != clock[1] || check.Second() != clock[2] {
		return time.Time{}, allDay, fmt.Errorf("out of range date %q", v)
	}

	return time.Date(year, time.Month(month), day, clock[0], clock[1], clock[2], 0, location), allDay, nil
}

func atoi(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
	}
	return strconv.Atoi(s)
}

var durationRe = regexp.MustCompile(`^([+-])?P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseDuration reads an RFC 5545 DURATION value such as PT1H30M or P1D.
func parseDuration(v string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(v)))
	if m == nil || strings.Join(m[2:], "") == "" {
		return 0, fmt.Errorf("invalid duration %q", v)
	}

	units := []time.Duration{7 * 24 * time.Hour, 24 * time.Hour, time.Hour, time.Minute, time.Second}

	var d time.Duration
	for i, unit := range units {
		if m[i+2] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+2])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", v, err)
		}
		d += time.Duration(n) * unit
	}

	if m[1] == "-" {
		d = -d
	}

	return d, nil
}

func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}

		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
