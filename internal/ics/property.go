package ics

import "strings"

// Property is one decomposed KEY[;PARAM=...]:VALUE content line.
type Property struct {
	Key    string
	Params map[string]string
	Value  string
}

func (p Property) Param(name string) string {
	return p.Params[strings.ToUpper(name)]
}

// parseProperty splits a content line on its first colon, so colons in the value are kept.
// Quoting is not honored: a quoted parameter value holding a colon, such as
// TZID="GMT+01:00", is cut at that colon like any other.
func parseProperty(line string) (Property, bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return Property{}, false
	}

	name, value := line[:i], line[i+1:]

	p := Property{Value: value}

	parts := strings.Split(name, ";")
	p.Key = strings.ToUpper(strings.TrimSpace(parts[0]))
	if p.Key == "" {
		return Property{}, false
	}

	if len(parts) > 1 {
		p.Params = make(map[string]string, len(parts)-1)
		for _, param := range parts[1:] {
			k, v, _ := strings.Cut(param, "=")
			k = strings.ToUpper(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			p.Params[k] = strings.Trim(v, `"`)
		}
	}

	return p, true
}
