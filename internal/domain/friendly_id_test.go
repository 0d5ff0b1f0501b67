package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func TestNewFriendlyID(t *testing.T) {
	id, err := NewFriendlyID("eng", 42)
	require.NoError(t, err)
	assert.Equal(t, "ENG", id.ProjectPrefix)
	assert.Equal(t, 42, id.SequenceNumber)
	assert.Equal(t, "ENG-42", id.String())
	assert.False(t, id.IsZero())
}

func TestNewFriendlyIDRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		number int
	}{
		{"empty prefix", "", 1},
		{"blank prefix", "   ", 1},
		{"prefix too long", "ABCDEFGHIJK", 1},
		{"non alphanumeric prefix", "EN-G", 1},
		{"zero number", "ENG", 0},
		{"negative number", "ENG", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFriendlyID(tc.prefix, tc.number)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestParseFriendlyID(t *testing.T) {
	id, err := ParseFriendlyID("ENG-7")
	require.NoError(t, err)
	assert.Equal(t, "ENG", id.ProjectPrefix)
	assert.Equal(t, 7, id.SequenceNumber)
}

func TestParseFriendlyIDRejectsMalformedValues(t *testing.T) {
	for _, raw := range []string{"", "ENG", "ENG-", "-7", "ENG-7-1", "ENG-abc", "ENG-0"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseFriendlyID(raw)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}
