package internal

import "time"

// ExtractedFields holds the page-1 header fields of a packing list. Every
// field is optional: a nil pointer means the pattern did not match, and the
// record builder substitutes "UNKNOWN" where the export format needs a value.
type ExtractedFields struct {
	OrderID             *string
	MerchCode           *string
	SeasonDigits        *string
	StyleCode           *string
	CollectionRaw       *string
	HandoverDate        *time.Time
	ItemClassification  *string
	SupplierProductCode *string
	SupplierName        *string
}

// PageItems is the outcome of scanning page 3: SKUs and valid barcodes in
// encounter order, after exclusion annotations have been applied.
type PageItems struct {
	SKUs     []string
	Barcodes []string
}

// Record is one exportable CSV row, one per barcode of one document.
// Enrichment stages fill the trailing fields in place.
type Record struct {
	OrderID             string
	Style               string
	Colour              string
	SupplierProductCode string
	ItemClassification  string
	SupplierName        string
	TodayDate           string
	Collection          string
	ColourSKU           string
	StyleMerchSeason    string
	Batch               string
	SKU                 string
	Barcode             string
	WashingCode         string
	EUR                 string
	BGN                 string
	BAM                 string
	PLN                 string
	RON                 string
	CZK                 string
	MKD                 string
	RSD                 string
	HUF                 string
	ProductName         string
	Dept                string
	Cotton              string
}

type CategoryCode string

const (
	CategoryYoungerGirls CategoryCode = "yg"
	CategoryBabyBoys     CategoryCode = "b"
	CategoryBabyGirls    CategoryCode = "a"
	CategoryEssentials   CategoryCode = "d"
	CategoryEssentialsG  CategoryCode = "d_girls"
)

// MaterialInput is one operator-selected material with its free-text
// composition ("100", "90 cotton 10 elastane", ...). Composition may be empty.
type MaterialInput struct {
	Name        string
	Composition string
}

// DocumentRow mirrors the documents table: one stored packing-list PDF,
// whether supplied directly or pulled out of a supplier mail.
type DocumentRow struct {
	ID         int
	Provider   string
	SourceID   string
	Filename   string
	Hash       string
	Status     string
	RawRef     string
	ReceivedAt string
}

// MailRow mirrors the mails table: one fetched supplier message whose raw
// MIME is kept on disk.
type MailRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}
