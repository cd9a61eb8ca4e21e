package value_objects_test

import (
	"testing"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected value_objects.Status
	}{
		{"pending", value_objects.StatusPending},
		{"in-progress", value_objects.StatusInProgress},
		{"in_progress", value_objects.StatusInProgress},
		{"Completed", value_objects.StatusCompleted},
		{"cancelled", value_objects.StatusCancelled},
		{"canceled", value_objects.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := value_objects.ParseStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}

	_, err := value_objects.ParseStatus("archived")
	assert.ErrorIs(t, err, value_objects.ErrInvalidStatus)
}

func TestStatus_Flags(t *testing.T) {
	assert.True(t, value_objects.StatusPending.IsActive())
	assert.True(t, value_objects.StatusInProgress.IsActive())
	assert.False(t, value_objects.StatusCompleted.IsActive())
	assert.False(t, value_objects.StatusCancelled.IsActive())

	assert.True(t, value_objects.StatusCompleted.IsCompleted())
	assert.False(t, value_objects.StatusCancelled.IsCompleted())
}

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, s := range []value_objects.Status{
		value_objects.StatusPending,
		value_objects.StatusInProgress,
		value_objects.StatusCompleted,
		value_objects.StatusCancelled,
	} {
		parsed, err := value_objects.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.False(t, value_objects.Status(0).IsValid())
}
