package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientSeatsError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("reserve: %w", &InsufficientSeatsError{Requested: 3, Remaining: 1})

	assert.ErrorIs(t, err, ErrInsufficientSeats)

	var insufficient *InsufficientSeatsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 1, insufficient.Remaining)
	assert.Equal(t, 3, insufficient.Requested)
}

func TestInsufficientSeatsError_Message(t *testing.T) {
	err := &InsufficientSeatsError{Requested: 2, Remaining: 0}
	assert.Equal(t, "only 0 seat(s) available, but 2 requested", err.Error())
}
