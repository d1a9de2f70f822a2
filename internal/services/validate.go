package services

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cortexai/cortex-api/internal/common"
)

const (
	MinPasswordLength  = 6
	MaxMoodLength      = 64
	MinClientUserIDLen = 8
	MaxClientUserIDLen = 64
	MaxDisplayNameLen  = 120
	MinAge, MaxAge     = 0, 120
)

func validationError(format string, args ...any) error {
	return common.Detail(common.ErrValidation, fmt.Sprintf(format, args...))
}

// normalizeEmail validates a bare address and lowercases its domain. The
// domain must hold at least one dot with a label on either side.
func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("value is not a valid email address")
	}
	at := strings.LastIndex(email, "@")
	domain := strings.ToLower(email[at+1:])
	labels := strings.Split(domain, ".")
	if at < 0 || len(labels) < 2 || slices.Contains(labels, "") {
		return "", validationError("value is not a valid email address")
	}
	return email[:at+1] + domain, nil
}

func validateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return validationError("%s must be at least %d characters", field, min)
	}
	if max > 0 && n > max {
		return validationError("%s must be at most %d characters", field, max)
	}
	return nil
}

func validateRange(field string, value, min, max int) error {
	if value < min || value > max {
		return validationError("%s must be between %d and %d", field, min, max)
	}
	return nil
}
