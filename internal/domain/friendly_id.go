package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// FriendlyID is the human-readable task identifier, rendered as "PREFIX-N".
// Equality is by (prefix, number); the zero value is invalid.
type FriendlyID struct {
	ProjectPrefix  string
	SequenceNumber int
}

// NewFriendlyID builds a friendly ID from a project prefix and a positive
// sequence number. The prefix is stored uppercase.
func NewFriendlyID(projectPrefix string, sequenceNumber int) (FriendlyID, error) {
	if strings.TrimSpace(projectPrefix) == "" {
		return FriendlyID{}, apperrors.NewValidationError("project prefix cannot be empty", nil)
	}
	if len(projectPrefix) > 10 {
		return FriendlyID{}, apperrors.NewValidationError("project prefix cannot exceed 10 characters", nil)
	}
	if !isAlphanumeric(projectPrefix) {
		return FriendlyID{}, apperrors.NewValidationError("project prefix can only contain letters and digits", nil)
	}
	if sequenceNumber <= 0 {
		return FriendlyID{}, apperrors.NewValidationError("sequence number must be positive", nil)
	}

	return FriendlyID{
		ProjectPrefix:  strings.ToUpper(projectPrefix),
		SequenceNumber: sequenceNumber,
	}, nil
}

// ParseFriendlyID parses the strict "PREFIX-NUMBER" rendering. Inputs with
// missing parts or extra hyphens are rejected.
func ParseFriendlyID(value string) (FriendlyID, error) {
	if strings.TrimSpace(value) == "" {
		return FriendlyID{}, apperrors.NewValidationError("friendly ID cannot be empty", nil)
	}

	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return FriendlyID{}, apperrors.NewValidationError("invalid friendly ID format, expected PREFIX-NUMBER", nil)
	}
	sequenceNumber, err := strconv.Atoi(parts[1])
	if err != nil {
		return FriendlyID{}, apperrors.NewValidationError("invalid sequence number in friendly ID", nil)
	}

	return NewFriendlyID(parts[0], sequenceNumber)
}

func (f FriendlyID) String() string {
	return fmt.Sprintf("%s-%d", f.ProjectPrefix, f.SequenceNumber)
}

// IsZero reports whether the ID is the uninitialized zero value.
func (f FriendlyID) IsZero() bool {
	return f.ProjectPrefix == ""
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
