package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)`)

// ParseDecimal reads operator-entered numbers that may use either a comma or
// a dot as the decimal separator ("12,50" and "12.50" both parse to 12.5).
func ParseDecimal(input string) (float64, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if norm == "" {
		return 0, fmt.Errorf("empty number")
	}
	v, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", input)
	}
	return v, nil
}

// LeadingNumber extracts the first numeric token of a composition string
// ("90 cotton 10 elastane" -> 90). Returns false when none is present.
func LeadingNumber(input string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(input)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
