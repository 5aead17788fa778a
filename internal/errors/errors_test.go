package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrTypeUnsafeStatement, "only SELECT allowed")
	assert.Equal(t, "unsafe_statement: only SELECT allowed", err.Error())

	wrapped := Wrap(assert.AnError, ErrTypeExecution, "query failed")
	assert.Contains(t, wrapped.Error(), "execution: query failed")
	assert.Contains(t, wrapped.Error(), "caused by")
}

func TestIsType(t *testing.T) {
	err := New(ErrTypeUnknownTable, "no such table")

	assert.True(t, IsType(err, ErrTypeUnknownTable))
	assert.False(t, IsType(err, ErrTypeExecution))
	assert.False(t, IsType(assert.AnError, ErrTypeUnknownTable))
	assert.False(t, IsType(nil, ErrTypeUnknownTable))
}

func TestIsType_SeesThroughWrapping(t *testing.T) {
	inner := New(ErrTypeNetwork, "connection reset")
	outer := fmt.Errorf("calling model: %w", inner)

	assert.True(t, IsType(outer, ErrTypeNetwork))
	assert.Equal(t, ErrTypeNetwork, GetType(outer))
}

func TestGetType_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrTypeInternal, GetType(assert.AnError))
}

func TestUnwrap(t *testing.T) {
	wrapped := Wrap(assert.AnError, ErrTypeExecution, "outer")
	require.ErrorIs(t, wrapped, assert.AnError)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    bool
	}{
		{ErrTypeNetwork, true},
		{ErrTypeServiceUnavailable, true},
		{ErrTypeQuotaExceeded, false},
		{ErrTypeUnsafeStatement, false},
		{ErrTypeUnknownTable, false},
		{ErrTypeConfigIncomplete, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(New(tt.errType, "x")))
		})
	}
}

func TestWithSuggestion(t *testing.T) {
	err := NewConfigError("missing API key", "llm.api_key")

	assert.Contains(t, err.Message, "llm.api_key")
	assert.NotEmpty(t, err.Suggestions)
}
