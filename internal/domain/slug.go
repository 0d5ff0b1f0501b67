package domain

import (
	"strings"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// Slug is a URL-friendly identifier derived from arbitrary input.
type Slug struct {
	value string
}

// NewSlug normalizes raw input into a slug: lowercase, non-alphanumeric runs
// collapsed to single hyphens, edges trimmed. Length must land in 2..50.
func NewSlug(raw string) (Slug, error) {
	if strings.TrimSpace(raw) == "" {
		return Slug{}, apperrors.NewValidationError("slug cannot be empty", nil)
	}

	slug := normalizeSlug(raw)
	if len(slug) < 2 {
		return Slug{}, apperrors.NewValidationError("slug must be at least 2 characters long", nil)
	}
	if len(slug) > 50 {
		return Slug{}, apperrors.NewValidationError("slug cannot exceed 50 characters", nil)
	}

	return Slug{value: slug}, nil
}

func normalizeSlug(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

func (s Slug) String() string {
	return s.value
}

// IsZero reports whether the slug is the uninitialized zero value.
func (s Slug) IsZero() bool {
	return s.value == ""
}
