package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "url", "url must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "url", "url must be provided")
	v.Check(false, "url", "second message is ignored")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"url": "url must be provided"}, v.Errors)
}
