package pipeline

import (
	"regexp"

	"packlist/internal"
)

var (
	reSKU      = regexp.MustCompile(`\b\d{8}\b`)
	reBarcode  = regexp.MustCompile(`\b\d{13}\b`)
	reExcluded = regexp.MustCompile(`barcode:\s*(\d{13});`)
)

// ParsePage3 scans the SKU/barcode sheet. SKUs are all 8-digit tokens and
// barcodes all 13-digit tokens, each in encounter order. A 13-digit value
// captured by a "barcode: NNNNNNNNNNNNN;" annotation is excluded from the
// valid barcodes even where it also occurs as a bare token. Duplicates among
// the survivors are kept.
func ParsePage3(text string) internal.PageItems {
	skus := reSKU.FindAllString(text, -1)
	all := reBarcode.FindAllString(text, -1)

	excluded := map[string]struct{}{}
	for _, m := range reExcluded.FindAllStringSubmatch(text, -1) {
		excluded[m[1]] = struct{}{}
	}

	barcodes := make([]string, 0, len(all))
	for _, b := range all {
		if _, skip := excluded[b]; skip {
			continue
		}
		barcodes = append(barcodes, b)
	}

	return internal.PageItems{SKUs: skus, Barcodes: barcodes}
}
