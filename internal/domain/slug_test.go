package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func TestNewSlugNormalizes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"My Workspace", "my-workspace"},
		{"  Platform Team!  ", "platform-team"},
		{"a--b___c", "a-b-c"},
		{"Already-Fine", "already-fine"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			slug, err := NewSlug(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, slug.String())
		})
	}
}

func TestNewSlugRejectsInvalidInput(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":           "",
		"blank":           "   ",
		"too short":       "!a!",
		"only separators": "___",
		"too long":        strings.Repeat("ab", 30),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewSlug(raw)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}
