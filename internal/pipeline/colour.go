package pipeline

import (
	"errors"
	"regexp"
	"strings"

	"packlist/internal/util"
)

// ErrColourManual means the colour could not be derived automatically:
// either the page carries a literal MANUAL marker or no candidate line
// survived filtering. The operator must supply an override; until then the
// colour is treated as "UNKNOWN" for display only.
var ErrColourManual = errors.New("colour requires manual input")

// Boilerplate keywords of the colour sheet. Any line containing one of them
// (case-insensitive) is discarded before picking the colour line. The last
// three entries are literal header lines of the document family.
var colourSkipKeywords = []string{
	"PURCHASE", "COLOUR", "TOTAL", "PANTONE", "SUPPLIER",
	"PRICE", "ORDERED", "SIZES", "TPG", "TPX", "USD", "NIP",
	"PEPCO", "Poland", "ul. Strzeszyńska 73A, 60-479 Poznań",
	"NIP 782-21-31-157",
}

var (
	reNumericLine = regexp.MustCompile(`^[\d\s,./-]+$`)
	reColourNoise = regexp.MustCompile(`[\d.)(]+`)
)

// ParseColour derives the colour token from the colour sheet (page 2):
// drop boilerplate and numeric-only lines, take the first survivor, strip
// digits and parentheses, upper-case. A MANUAL marker or an empty survivor
// set yields ErrColourManual.
func ParseColour(text string) (string, error) {
	for _, line := range util.SplitLines(text) {
		if isColourBoilerplate(line) || reNumericLine.MatchString(line) {
			continue
		}

		colour := strings.ToUpper(strings.TrimSpace(reColourNoise.ReplaceAllString(line, "")))
		if strings.Contains(colour, "MANUAL") {
			return "", ErrColourManual
		}
		if colour == "" {
			return "UNKNOWN", nil
		}
		return colour, nil
	}

	return "", ErrColourManual
}

func isColourBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range colourSkipKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
