package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelStillMatches(t *testing.T) {
	cause := fmt.Errorf("duplicate entry 'a:b' for key 'pair_key'")
	err := ErrDuplicateRelationship.Wrap(cause)

	assert.ErrorIs(t, err, ErrDuplicateRelationship)
	assert.ErrorIs(t, errors.Unwrap(err), cause)
	assert.Equal(t, CodeDuplicateRelationship, Code(err))
}

func TestWithMessageKeepsCode(t *testing.T) {
	err := ErrInvalidTransition.WithMessage("Cannot change status from '%s' to '%s'", "declined", "accepted")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, "Cannot change status from 'declined' to 'accepted'", Message(err))
}

func TestCodeAndMessageForUnknownErrors(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, CodeServerError, Code(err))
	assert.Equal(t, "Internal server error", Message(err))
}
