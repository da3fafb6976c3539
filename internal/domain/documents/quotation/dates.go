package quotation

import (
	"time"

	"billbook/internal/core/apperror"
)

// Validity date input formats, tried in order.
var validUntilFormats = []string{
	"02/01/2006", // DD/MM/YYYY
	"2006-01-02", // YYYY-MM-DD
}

// ParseValidUntil parses a validity date in DD/MM/YYYY or YYYY-MM-DD form.
func ParseValidUntil(value string) (time.Time, error) {
	for _, layout := range validUntilFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.NewDateParse(value)
}
