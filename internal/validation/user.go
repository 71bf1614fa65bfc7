package validation

import (
	"errors"
	"strings"
)

// ValidateUserID validates the opaque user identifier used as the owning key.
// The ID is stored as given, so surrounding whitespace is rejected rather than
// trimmed.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("userId is required")
	}

	if strings.TrimSpace(userID) != userID {
		return errors.New("userId must not start or end with whitespace")
	}

	if len(userID) > 64 {
		return errors.New("userId is too long (max 64 characters)")
	}

	return nil
}
