package model

import "strings"

type ExternalSource string

const (
	SourceGoogle  ExternalSource = "google"
	SourceOutlook ExternalSource = "outlook"
	SourceICloud  ExternalSource = "icloud"
	SourceICS     ExternalSource = "ics"
)

// DisplayName is the capitalized provider name.
func (s ExternalSource) DisplayName() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
