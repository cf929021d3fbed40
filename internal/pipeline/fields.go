package pipeline

import (
	"io"
	"regexp"
	"strings"
	"time"

	"packlist/internal"
	"packlist/internal/util"
)

// Page-1 label patterns. Labels are followed by a run of two or more dots,
// with whitespace tolerated on both sides. A pattern that does not match
// leaves its field nil; absence never aborts the pass.
var (
	reOrderID      = regexp.MustCompile(`(?i)Order\s*-\s*ID\s*\.{2,}\s*(.+)`)
	reOrderIDToken = regexp.MustCompile(`(?i)Order\s*-\s*ID\s*\.{2,}\s*([A-Z0-9_+-]+)`)
	reMerchCode    = regexp.MustCompile(`Merch\s*code\s*\.{2,}\s*([\w/]+)`)
	reSeason       = regexp.MustCompile(`Season\s*\.{2,}\s*(\w+)?\s*(\d{2})`)
	reStyleCode    = regexp.MustCompile(`\b\d{6}\b`)
	reCollection   = regexp.MustCompile(`Collection\s*\.{2,}\s*(.+)`)
	reHandover     = regexp.MustCompile(`Handover\s*date\s*\.{2,}\s*(\d{2}/\d{2}/\d{4})`)
	reItemClass    = regexp.MustCompile(`Item classification\s*\.{2,}\s*(.+)`)
	reSupplierCode = regexp.MustCompile(`Supplier product code\s*\.{2,}\s*(.+)`)
	reSupplierName = regexp.MustCompile(`Supplier name\s*\.{2,}\s*(.+)`)
)

// ParsePage1 pulls the header fields out of the first page's text. Every
// field is independently optional.
func ParsePage1(text string) internal.ExtractedFields {
	fields := internal.ExtractedFields{}

	if m := reOrderID.FindStringSubmatch(text); m != nil {
		fields.OrderID = util.StringPtr(strings.TrimSpace(m[1]))
	}
	if m := reMerchCode.FindStringSubmatch(text); m != nil {
		fields.MerchCode = util.StringPtr(strings.TrimSpace(m[1]))
	}
	if m := reSeason.FindStringSubmatch(text); m != nil {
		// Only the two-digit group is kept; the word token before it
		// ("SPRING 26" -> "26") is discarded.
		fields.SeasonDigits = util.StringPtr(m[2])
	}
	if m := reStyleCode.FindString(text); m != "" {
		fields.StyleCode = util.StringPtr(m)
	}
	if m := reCollection.FindStringSubmatch(text); m != nil {
		// Keep the portion before the first "-" ("CROCO CLUB - extra"
		// -> "CROCO CLUB").
		raw := strings.SplitN(m[1], "-", 2)[0]
		fields.CollectionRaw = util.StringPtr(strings.TrimSpace(raw))
	}
	if m := reHandover.FindStringSubmatch(text); m != nil {
		if parsed, err := time.Parse("02/01/2006", m[1]); err == nil {
			fields.HandoverDate = &parsed
		}
	}
	if m := reItemClass.FindStringSubmatch(text); m != nil {
		fields.ItemClassification = util.StringPtr(strings.TrimSpace(m[1]))
	}
	if m := reSupplierCode.FindStringSubmatch(text); m != nil {
		fields.SupplierProductCode = util.StringPtr(strings.TrimSpace(m[1]))
	}
	if m := reSupplierName.FindStringSubmatch(text); m != nil {
		fields.SupplierName = util.StringPtr(strings.TrimSpace(m[1]))
	}

	return fields
}

// ParseOrderIDOnly extracts just the order id from a secondary document.
// The reader's position is saved and restored, so the same upload can be
// consumed again later. Returns nil when the document is unreadable or the
// label is missing; secondary documents never fail the pass.
func ParseOrderIDOnly(r io.ReadSeeker) *string {
	pages, err := ExtractPages(r)
	if err != nil || len(pages) < 1 {
		return nil
	}
	m := reOrderIDToken.FindStringSubmatch(pages[0])
	if m == nil {
		return nil
	}
	return util.StringPtr(strings.TrimSpace(m[1]))
}
