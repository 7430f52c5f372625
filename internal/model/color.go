package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/gerow/go-color"
)

// ParseColor accepts html hex colors with or without the leading '#'.
func ParseColor(s string) (color.RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := color.HTMLToRGB(s)
	if err != nil {
		return color.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return c, nil
}

// ColorCode renders c the way it is stored on calendars and events, lower case #rrggbb.
func ColorCode(c color.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

var sourceColors = map[ExternalSource]string{
	SourceGoogle:  "4285f4",
	SourceOutlook: "0078d4",
	SourceICloud:  "a855f7",
	SourceICS:     "3b82f6",
}

// DefaultColor is the color a freshly imported calendar of the source gets.
func (s ExternalSource) DefaultColor() color.RGB {
	code, ok := sourceColors[s]
	if !ok {
		code = sourceColors[SourceICS]
	}

	c, _ := color.HTMLToRGB(code)
	return c
}
