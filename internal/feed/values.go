package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStatValue decodes the value forms the platform emits for a single
// stat: a plain number, an empty placeholder, or a dash. Fractions ("3/7")
// are not a single value; use ParseFraction for those columns.
func ParseStatValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("ParseStatValue: unable to parse '%s': %w", s, err)
	}
	return v, nil
}

// ParseFraction decodes a makes/attempts column like "3/7". An empty or
// dash placeholder is zero of zero.
func ParseFraction(s string) (made, attempted float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, 0, nil
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("ParseFraction: '%s' is not a makes/attempts pair", s)
	}
	if made, err = ParseStatValue(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("ParseFraction: %w", err)
	}
	if attempted, err = ParseStatValue(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("ParseFraction: %w", err)
	}
	return made, attempted, nil
}
