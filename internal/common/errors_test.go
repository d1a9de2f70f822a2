package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetail_MatchesKind(t *testing.T) {
	err := fmt.Errorf("register: %w", Detail(ErrAlreadyExists, "Email already registered"))

	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Email already registered", Message(err, "fallback"))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("db down"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}
