package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, in := range []string{"#3b82f6", "3b82f6", " #3B82F6 "} {
		c, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, "#3b82f6", ColorCode(c))
	}

	for _, in := range []string{"", "#", "blue", "#12345", "#1234567"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, in)
	}
}

func TestDefaultColor(t *testing.T) {
	assert.Equal(t, "#4285f4", ColorCode(SourceGoogle.DefaultColor()))
	assert.Equal(t, ColorCode(SourceICS.DefaultColor()), ColorCode(ExternalSource("other").DefaultColor()))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Outlook", SourceOutlook.DisplayName())
	assert.Equal(t, "Ics", SourceICS.DisplayName())
	assert.Equal(t, "", ExternalSource("").DisplayName())
}

func TestImportError(t *testing.T) {
	cause := errors.New("connection reset")

	err := NewImportError(StagePersist, KindPersistenceFailure, "failed to save calendar", cause)
	assert.Equal(t, "failed to save calendar: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewImportError(StageParse, KindNoEvents, "no events found in calendar", nil)
	assert.Equal(t, "no events found in calendar", bare.Error())
}

func TestParseDedupPolicy(t *testing.T) {
	p, ok := ParseDedupPolicy("upsert")
	assert.True(t, ok)
	assert.Equal(t, DedupUpsert, p)

	_, ok = ParseDedupPolicy("merge")
	assert.False(t, ok)
}
