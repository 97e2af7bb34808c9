package idempotency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in      string
		want    State
		wantErr error
	}{
		{in: "in_progress", want: StateInProgress},
		{in: "completed", want: StateCompleted},
		{in: "failed", want: StateFailed},
		{in: "none", want: StateError, wantErr: ErrInvalidState},
		{in: "", want: StateError, wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseState(tt.in)

			assert.Equal(t, tt.want, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_DefaultPrefix(t *testing.T) {
	assert.Equal(t, DefaultPrefix, New(nil, "").prefix)
	assert.Equal(t, "x:", New(nil, "x:").prefix)
}
