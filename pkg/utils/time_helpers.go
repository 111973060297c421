package utils

import (
	"strings"
	"time"

	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"
)

// ParseDate принимает "2006-01-02" или полный RFC3339.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(constants.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewInvalidInputError("Неверный формат даты %q, ожидается YYYY-MM-DD", raw)
}
