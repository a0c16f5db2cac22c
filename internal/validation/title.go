package validation

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrTitleRequired = errors.New("title is required")

// ValidateTitle trims and NFC-normalises a goal title
func ValidateTitle(title string) (string, error) {
	trimmed := norm.NFC.String(strings.TrimSpace(title))

	if trimmed == "" {
		return "", ErrTitleRequired
	}

	return trimmed, nil
}
