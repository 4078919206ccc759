package sweep

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var agePattern = regexp.MustCompile(`^(\d+)\s*([dwmy])$`)

// ParseAge parses a minimum-age string such as "5d", "4w", "3m", or "1y"
// into a duration. Months and years are approximated as 30 and 365 days.
// An empty string means no age filter and parses to zero.
func ParseAge(value string) (time.Duration, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, nil
	}

	match := agePattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("invalid age %q: use a number plus d, w, m, or y (e.g. 5d, 4w, 3m, 1y)", value)
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: %w", value, err)
	}

	day := 24 * time.Hour
	switch match[2] {
	case "d":
		return time.Duration(n) * day, nil
	case "w":
		return time.Duration(n) * 7 * day, nil
	case "m":
		return time.Duration(n) * 30 * day, nil
	case "y":
		return time.Duration(n) * 365 * day, nil
	}
	return 0, fmt.Errorf("invalid age %q", value)
}

// OldEnough reports whether an item added at the given millisecond timestamp
// is at least minAge old. Items with no timestamp pass the filter; deleting
// them is the conservative reading of an unknown age for finished media.
func OldEnough(addedAtMillis int64, minAge time.Duration, now time.Time) bool {
	if minAge <= 0 {
		return true
	}
	if addedAtMillis <= 0 {
		return true
	}
	addedAt := time.UnixMilli(addedAtMillis)
	return now.Sub(addedAt) >= minAge
}
