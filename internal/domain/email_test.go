package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func TestNewEmailNormalizes(t *testing.T) {
	email, err := NewEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.String())
	assert.False(t, email.IsZero())
}

func TestNewEmailRejectsInvalidFormats(t *testing.T) {
	for _, raw := range []string{"", "   ", "plainaddress", "@example.com", "user@", "user@example", "user@example."} {
		t.Run(raw, func(t *testing.T) {
			_, err := NewEmail(raw)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}
