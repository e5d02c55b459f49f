package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	fields, err := ParseCallback("bus:pick:3:17", "bus:pick:", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "17"}, fields)

	fields, err = ParseCallback("dt:pick:2026-10-19", "dt:pick:", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19"}, fields)

	bad := []struct {
		data, prefix string
		parts        int
	}{
		{"bus:pick:3", "bus:pick:", 2},
		{"bus:pick:", "bus:pick:", 1},
		{"st:tog:5", "bus:pick:", 1},
		{"bus:pick:3::", "bus:pick:", 3},
	}
	for _, tt := range bad {
		_, err := ParseCallback(tt.data, tt.prefix, tt.parts)
		assert.ErrorIs(t, err, ErrInvalidFormat, tt.data)
	}
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content")))
	assert.False(t, IsMessageNotModifiedError(errors.New("forbidden")))
	assert.False(t, IsMessageNotModifiedError(nil))
}
