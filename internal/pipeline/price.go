package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"packlist/internal/refdata"
	"packlist/internal/util"
)

// ErrPriceNotFound means the anchor value is not present verbatim in the
// anchor column. The ladder is exact-match only: no rounding to the nearest
// tier, no interpolation.
var ErrPriceNotFound = errors.New("price not found in ladder")

// decimalCurrencies render with two decimals and a comma separator; every
// other currency renders as a whole number.
var decimalCurrencies = map[string]struct{}{
	"EUR": {}, "BGN": {}, "BAM": {}, "RON": {}, "PLN": {},
}

// LookupPrices locates the anchor value in the ladder's anchor column and
// returns every other currency's value at the same row index, formatted per
// FormatNumber.
func LookupPrices(anchorCurrency string, anchorValue float64, table refdata.PriceTable) (map[string]string, error) {
	anchorColumn, ok := table.Columns[anchorCurrency]
	if !ok {
		return nil, fmt.Errorf("%w: ladder has no %s column", ErrPriceNotFound, anchorCurrency)
	}

	idx := -1
	for i, cell := range anchorColumn {
		v, err := util.ParseDecimal(cell)
		if err != nil {
			continue
		}
		if v == anchorValue {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s %v", ErrPriceNotFound, anchorCurrency, anchorValue)
	}

	out := map[string]string{}
	for currency, values := range table.Columns {
		if currency == anchorCurrency {
			continue
		}
		if idx >= len(values) {
			continue
		}
		out[currency] = FormatNumber(values[idx], currency)
	}
	return out, nil
}

// FormatNumber renders a ladder cell for one currency: two comma-decimal
// digits without thousands grouping for the decimal currencies, a truncated
// whole number for the rest. Non-numeric input passes through unchanged.
func FormatNumber(value, currency string) string {
	v, err := util.ParseDecimal(value)
	if err != nil {
		return value
	}
	return FormatAmount(v, currency)
}

// FormatAmount is FormatNumber for an already-parsed value.
func FormatAmount(v float64, currency string) string {
	if _, ok := decimalCurrencies[currency]; ok {
		return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
	}
	return strconv.Itoa(int(v))
}
