package order

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultRetentionDays = 30
	// MaxRetentionDays keeps the cutoff computation far from time overflow.
	MaxRetentionDays = 36500
)

// ParseRetentionDays reads the days query value the way the dashboard sends
// it: leading whitespace is skipped and the leading integer is used, so
// "10abc" means 10. Missing, non-numeric and zero values fall back to
// DefaultRetentionDays; negatives and values above MaxRetentionDays are
// rejected.
func ParseRetentionDays(raw string) (int, error) {
	digits := leadingInteger(strings.TrimSpace(raw))
	if digits == "" || digits == "-" || digits == "+" {
		return DefaultRetentionDays, nil
	}

	days, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// only range errors reach here
		return 0, fmt.Errorf("%w: days %q is out of range", ErrInvalidArgument, raw)
	}
	switch {
	case days == 0:
		return DefaultRetentionDays, nil
	case days < 0:
		return 0, fmt.Errorf("%w: days must not be negative", ErrInvalidArgument)
	case days > MaxRetentionDays:
		return 0, fmt.Errorf("%w: days must not exceed %d", ErrInvalidArgument, MaxRetentionDays)
	}
	return int(days), nil
}

func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
