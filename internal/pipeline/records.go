package pipeline

import (
	"fmt"
	"time"

	"packlist/internal"
	"packlist/internal/util"
)

// batchLeadDays is how far production precedes the handover date.
const batchLeadDays = 20

// BuildRecords pairs skus[i] with barcodes[i] for i < min(len(skus),
// len(barcodes)) and attaches a copy of the page-1 fields plus the colour to
// every record. Extra entries in the longer list are dropped; the truncation
// is deliberate, not an error. Missing fields degrade to "UNKNOWN".
func BuildRecords(fields internal.ExtractedFields, colour string, items internal.PageItems, today time.Time) []internal.Record {
	n := len(items.SKUs)
	if len(items.Barcodes) < n {
		n = len(items.Barcodes)
	}

	styleSuffix := ""
	if fields.MerchCode != nil && fields.SeasonDigits != nil {
		styleSuffix = *fields.MerchCode + *fields.SeasonDigits
	} else if fields.MerchCode != nil {
		styleSuffix = *fields.MerchCode
	}

	batch := "UNKNOWN"
	if fields.HandoverDate != nil {
		batch = fields.HandoverDate.AddDate(0, 0, -batchLeadDays).Format("012006")
	}

	styleMerchSeason := "STYLE UNKNOWN"
	if fields.StyleCode != nil {
		styleMerchSeason = fmt.Sprintf("STYLE %s • %s • Batch No./", *fields.StyleCode, styleSuffix)
	}

	out := make([]internal.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, internal.Record{
			OrderID:             util.DerefOr(fields.OrderID, "UNKNOWN"),
			Style:               util.DerefOr(fields.StyleCode, "UNKNOWN"),
			Colour:              colour,
			SupplierProductCode: util.DerefOr(fields.SupplierProductCode, "UNKNOWN"),
			ItemClassification:  util.DerefOr(fields.ItemClassification, "UNKNOWN"),
			SupplierName:        util.DerefOr(fields.SupplierName, "UNKNOWN"),
			TodayDate:           today.Format("02-01-2006"),
			Collection:          util.DerefOr(fields.CollectionRaw, "UNKNOWN"),
			ColourSKU:           fmt.Sprintf("%s • SKU %s", colour, items.SKUs[i]),
			StyleMerchSeason:    styleMerchSeason,
			Batch:               "Data e prodhimit: " + batch,
			SKU:                 items.SKUs[i],
			Barcode:             items.Barcodes[i],
		})
	}
	return out
}
