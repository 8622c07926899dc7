package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// NormalizeExternalID strips spaces and dashes from an ID typed by a person.
func NormalizeExternalID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, " ", "")
	return strings.ReplaceAll(id, "-", "")
}

// IsValidIsraeliID validates a 9 digit Israeli ID number with its Luhn-style
// check digit. Shorter numbers must be left-padded with zeros by the caller.
func IsValidIsraeliID(id string) bool {
	id = NormalizeExternalID(id)
	if len(id) != 9 || !IsNumeric(id) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		digit := int(id[i] - '0')
		product := digit * (i%2 + 1)
		if product > 9 {
			product -= 9
		}
		sum += product
	}
	return sum%10 == 0
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

// localTimestampLayouts are accepted when the client sends a wall clock time
// without an offset; the value is then interpreted in the caller's location.
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp accepts RFC3339 timestamps, or wall clock timestamps which
// are interpreted in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
